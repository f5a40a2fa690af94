package console

import (
	"context"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/render"
)

const (
	configStatement = "CALL dbms.listConfig"
	kernelStatement = "CALL dbms.queryJmx($query)"
	kernelQuery     = "org.neo4j:instance=kernel#0,name=Kernel"
)

// showConfig prints the server configuration, one key/value table per
// category. The category is the part of the setting name before the first
// dot.
func (d *Dispatcher) showConfig(ctx context.Context, args Args) error {
	if err := rejectArgs("/config", args); err != nil {
		return err
	}
	enc := d.session.Encoder()
	var table *render.TableWriter
	var last string
	err := d.session.Query(ctx, configStatement, nil, func(r *driver.Record) error {
		name, _ := r.Get("name")
		value, _ := r.Get("value")
		text, err := enc.EncodeDisplay(name)
		if err != nil {
			return err
		}
		category, _, _ := strings.Cut(text, ".")
		if table == nil || category != last {
			if table != nil {
				if err := table.Flush(); err != nil {
					return err
				}
				if _, err := io.WriteString(d.out, "\r\n"); err != nil {
					return err
				}
			}
			table = render.NewKeyValueTable(enc, d.out, "name", "value")
			last = category
		}
		_, err = table.WriteRecord([]cypher.Value{name, value})
		return err
	})
	if err != nil {
		return err
	}
	if table == nil {
		return nil
	}
	return table.Flush()
}

// showKernel prints the kernel attributes exposed over JMX, sorted by name.
func (d *Dispatcher) showKernel(ctx context.Context, args Args) error {
	if err := rejectArgs("/kernel", args); err != nil {
		return err
	}
	table := render.NewKeyValueTable(d.session.Encoder(), d.out, "key", "value")
	params := map[string]any{"query": kernelQuery}
	err := d.session.Query(ctx, kernelStatement, params, func(r *driver.Record) error {
		v, _ := r.Get("attributes")
		attributes, _ := v.(cypher.Map)
		keys := make([]string, 0, len(attributes))
		for k := range attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value := attributes[key]
			if m, ok := value.(cypher.Map); ok {
				value = m["value"]
			}
			if strings.HasSuffix(key, "Date") || strings.HasSuffix(key, "Time") {
				value = d.timestamp(value)
			}
			if _, err := table.WriteRecord([]cypher.Value{cypher.String(key), value}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return table.Flush()
}

// timestamp shows a millisecond epoch value as local date and time. Values
// that cannot be converted are returned unchanged.
func (d *Dispatcher) timestamp(v cypher.Value) cypher.Value {
	var t time.Time
	switch v := v.(type) {
	case cypher.Integer:
		t = time.UnixMilli(int64(v))
	case cypher.Float:
		ms := float64(v)
		if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > 1e17 {
			return v
		}
		micros := math.Round(ms * 1000)
		t = time.UnixMicro(int64(micros))
	default:
		return v
	}
	t = t.In(d.location)
	if t.Year() < 1 || t.Year() > 9999 {
		return v
	}
	layout := "2006-01-02 15:04:05"
	if t.Nanosecond() != 0 {
		layout += ".000000"
	}
	return cypher.String(t.Format(layout))
}
