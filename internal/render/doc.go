// Package render writes streamed query results as an aligned table or as
// comma- or tab-separated values. Results are consumed one page at a time
// so memory use is bounded by the page size, never by the result size.
package render
