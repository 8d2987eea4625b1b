package pointstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	influx "github.com/influxdata/influxdb1-client/v2"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// Influx tag keys. The field name and value kind ride along as tags so that
// reads can reconstruct typed values without guessing from JSON shapes.
const (
	fieldTag = "field"
	kindTag  = "kind"

	influxValueKey  = "value"
	influxPrecision = "ns"
)

// InfluxPointStore implements the PointStore interface on InfluxDB 1.x.
type InfluxPointStore struct {
	client   influx.Client
	database string
}

var _ contract.PointStore = &InfluxPointStore{} // Compile-time check

// NewInfluxPointStore creates a point store backed by an InfluxDB server.
func NewInfluxPointStore(addr, username, password, database string) (contract.PointStore, error) {
	c, err := influx.NewHTTPClient(influx.HTTPConfig{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create InfluxDB client for %q: %w", addr, err)
	}

	// Ping to verify connection
	if _, _, err := c.Ping(5 * time.Second); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB at %q: %w. Check that InfluxDB is running and accessible", addr, err)
	}

	store := &InfluxPointStore{client: c, database: database}
	if err := store.ensureDatabase(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return store, nil
}

// ensureDatabase creates the target database when it does not exist yet.
func (ps *InfluxPointStore) ensureDatabase() error {
	q := influx.NewQuery(fmt.Sprintf("CREATE DATABASE %q", ps.database), "", "")
	resp, err := ps.client.Query(q)
	if err != nil {
		return fmt.Errorf("failed to create InfluxDB database %q: %w", ps.database, err)
	}
	if resp.Error() != nil {
		return fmt.Errorf("failed to create InfluxDB database %q: %w", ps.database, resp.Error())
	}
	return nil
}

// WritePoints records a batch of points in a single InfluxDB write.
func (ps *InfluxPointStore) WritePoints(_ context.Context, points []schema.Point) error {
	if len(points) == 0 {
		return nil
	}

	bp, err := influx.NewBatchPoints(influx.BatchPointsConfig{
		Database:  ps.database,
		Precision: influxPrecision,
	})
	if err != nil {
		return fmt.Errorf("failed to create InfluxDB batch: %w", err)
	}

	for _, p := range points {
		tags := map[string]string{
			fieldTag: p.Field,
			kindTag:  string(p.Value.Kind),
		}
		fields := map[string]any{}
		switch p.Value.Kind {
		case schema.NumericKind:
			fields[influxValueKey] = p.Value.Num
		case schema.TextKind:
			fields[influxValueKey] = p.Value.Text
		case schema.TimeKind:
			fields[influxValueKey] = p.Value.Time.UnixNano()
		default:
			return fmt.Errorf("point for %s.%s has unsupported value kind %q", p.Measurement, p.Field, p.Value.Kind)
		}

		pt, err := influx.NewPoint(p.Measurement, tags, fields, p.Time)
		if err != nil {
			return fmt.Errorf("failed to build InfluxDB point for %s.%s: %w", p.Measurement, p.Field, err)
		}
		bp.AddPoint(pt)
	}

	if err := ps.client.Write(bp); err != nil {
		return fmt.Errorf("failed to write InfluxDB batch: %w", err)
	}
	return nil
}

// QuerySeries returns all points for measurement+field inside the half-open
// range [tr.Start, tr.Stop), ascending by timestamp.
func (ps *InfluxPointStore) QuerySeries(_ context.Context, measurement, field string, tr schema.TimeRange) (schema.Series, error) {
	series := schema.Series{Measurement: measurement, Field: field}

	if _, ok := schema.KnownMeasurements[measurement]; !ok {
		return series, fmt.Errorf("%w: %q", contract.ErrUnknownMeasurement, measurement)
	}

	cmd := fmt.Sprintf(
		`SELECT %q, "%s"::tag FROM %q WHERE %q = '%s' AND time >= %d AND time < %d ORDER BY time ASC`,
		influxValueKey, kindTag, measurement, fieldTag, field, tr.Start.UnixNano(), tr.Stop.UnixNano())

	resp, err := ps.client.Query(influx.NewQuery(cmd, ps.database, influxPrecision))
	if err != nil {
		return series, fmt.Errorf("failed to query series %s.%s: %w", measurement, field, err)
	}
	if resp.Error() != nil {
		return series, fmt.Errorf("failed to query series %s.%s: %w", measurement, field, resp.Error())
	}

	for _, result := range resp.Results {
		for _, row := range result.Series {
			for _, values := range row.Values {
				if len(values) < 3 {
					continue
				}
				point, err := decodeInfluxRow(measurement, field, values)
				if err != nil {
					return series, err
				}
				series.Points = append(series.Points, point)
			}
		}
	}
	return series, nil
}

// decodeInfluxRow converts one [time, value, kind] row into a typed point.
func decodeInfluxRow(measurement, field string, values []any) (schema.Point, error) {
	point := schema.Point{Measurement: measurement, Field: field}

	tsNanos, err := asInt64(values[0])
	if err != nil {
		return point, fmt.Errorf("invalid timestamp for %s.%s: %w", measurement, field, err)
	}
	point.Time = time.Unix(0, tsNanos).UTC()

	kind, _ := values[2].(string)
	switch schema.ValueKind(kind) {
	case schema.NumericKind:
		num, err := asFloat64(values[1])
		if err != nil {
			return point, fmt.Errorf("invalid numeric value for %s.%s: %w", measurement, field, err)
		}
		point.Value = schema.Number(num)
	case schema.TextKind:
		text, _ := values[1].(string)
		point.Value = schema.TextValue(text)
	case schema.TimeKind:
		nanos, err := asInt64(values[1])
		if err != nil {
			return point, fmt.Errorf("invalid time value for %s.%s: %w", measurement, field, err)
		}
		point.Value = schema.Timestamp(time.Unix(0, nanos).UTC())
	default:
		return point, fmt.Errorf("stored point for %s.%s has unsupported value kind %q", measurement, field, kind)
	}
	return point, nil
}

// ListMeasurements returns the distinct measurement names present.
func (ps *InfluxPointStore) ListMeasurements(_ context.Context) ([]string, error) {
	resp, err := ps.client.Query(influx.NewQuery("SHOW MEASUREMENTS", ps.database, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if resp.Error() != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", resp.Error())
	}

	var measurements []string
	for _, result := range resp.Results {
		for _, row := range result.Series {
			for _, values := range row.Values {
				if len(values) == 0 {
					continue
				}
				if name, ok := values[0].(string); ok {
					measurements = append(measurements, name)
				}
			}
		}
	}
	return measurements, nil
}

// GetStatus returns status information about the point store.
func (ps *InfluxPointStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   schema.InfluxBackend,
		Connected: true,
	}

	measurements, err := ps.ListMeasurements(ctx)
	if err != nil {
		return status, err
	}
	status.Measurements = measurements

	for _, m := range measurements {
		cmd := fmt.Sprintf(`SELECT COUNT(%q) FROM %q`, influxValueKey, m)
		resp, err := ps.client.Query(influx.NewQuery(cmd, ps.database, influxPrecision))
		if err != nil {
			return status, fmt.Errorf("failed to count points in %s: %w", m, err)
		}
		if resp.Error() != nil {
			return status, fmt.Errorf("failed to count points in %s: %w", m, resp.Error())
		}
		for _, result := range resp.Results {
			for _, row := range result.Series {
				for _, values := range row.Values {
					if len(values) < 2 {
						continue
					}
					count, err := asInt64(values[1])
					if err != nil {
						return status, fmt.Errorf("invalid point count for %s: %w", m, err)
					}
					status.TotalPoints += count
				}
			}
		}

		for _, boundary := range []struct {
			order string
			dest  *time.Time
		}{
			{"ASC", &status.OldestPoint},
			{"DESC", &status.NewestPoint},
		} {
			cmd := fmt.Sprintf(`SELECT %q FROM %q ORDER BY time %s LIMIT 1`, influxValueKey, m, boundary.order)
			resp, err := ps.client.Query(influx.NewQuery(cmd, ps.database, influxPrecision))
			if err != nil {
				return status, fmt.Errorf("failed to get time bounds for %s: %w", m, err)
			}
			if resp.Error() != nil {
				return status, fmt.Errorf("failed to get time bounds for %s: %w", m, resp.Error())
			}
			for _, result := range resp.Results {
				for _, row := range result.Series {
					for _, values := range row.Values {
						if len(values) == 0 {
							continue
						}
						tsNanos, err := asInt64(values[0])
						if err != nil {
							continue
						}
						ts := time.Unix(0, tsNanos).UTC()
						if boundary.dest.IsZero() ||
							(boundary.order == "ASC" && ts.Before(*boundary.dest)) ||
							(boundary.order == "DESC" && ts.After(*boundary.dest)) {
							*boundary.dest = ts
						}
					}
				}
			}
		}
	}

	return status, nil
}

// Close closes the underlying connection.
func (ps *InfluxPointStore) Close() error {
	return ps.client.Close()
}

// DropInfluxDatabase removes the configured database entirely.
func DropInfluxDatabase(addr, username, password, database string) error {
	c, err := influx.NewHTTPClient(influx.HTTPConfig{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create InfluxDB client for %q: %w", addr, err)
	}
	defer func() { _ = c.Close() }()

	resp, err := c.Query(influx.NewQuery(fmt.Sprintf("DROP DATABASE %q", database), "", ""))
	if err != nil {
		return fmt.Errorf("failed to drop InfluxDB database %q: %w", database, err)
	}
	if resp.Error() != nil {
		return fmt.Errorf("failed to drop InfluxDB database %q: %w", database, resp.Error())
	}
	return nil
}

// asInt64 coerces an InfluxDB JSON value into an int64.
func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}

// asFloat64 coerces an InfluxDB JSON value into a float64.
func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}
