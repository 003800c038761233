package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jjanczur/SPDB/chameleon"
)

// Column positions of a record.
const (
	colLabel = 1
	colLat   = 2
	colLng   = 3

	minColumns = colLng + 1
)

var (
	// ErrMalformedRecord is wrapped by every RecordError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNoRecords is returned when the input holds no data after the header.
	ErrNoRecords = errors.New("no records")
)

// RecordError reports a record that could not be turned into a point.
// Line and Column are 1-based positions in the input.
type RecordError struct {
	Line   int
	Column int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("geo: line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *RecordError) Unwrap() []error { return []error{ErrMalformedRecord, e.Err} }

// ReadPoints parses CSV records into points. The first line is a header and is
// skipped. Points are indexed in input order and carry both their geographic
// and projected coordinates.
func ReadPoints(r io.Reader) ([]chameleon.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("geo: %w", ErrNoRecords)
		}
		return nil, fmt.Errorf("geo: reading header: %w", err)
	}

	var points []chameleon.Point
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geo: %w", err)
		}

		p, err := parseRecord(cr, record)
		if err != nil {
			return nil, err
		}
		p.Index = len(points)
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("geo: %w", ErrNoRecords)
	}
	return points, nil
}

func parseRecord(cr *csv.Reader, record []string) (chameleon.Point, error) {
	if len(record) < minColumns {
		line, column := cr.FieldPos(0)
		return chameleon.Point{}, &RecordError{
			Line:   line,
			Column: column,
			Err:    fmt.Errorf("want at least %d columns, got %d", minColumns, len(record)),
		}
	}

	lat, err := parseCoordinate(cr, record, colLat, 90)
	if err != nil {
		return chameleon.Point{}, err
	}
	lng, err := parseCoordinate(cr, record, colLng, 180)
	if err != nil {
		return chameleon.Point{}, err
	}

	x, y := Project(lat, lng)
	return chameleon.Point{
		X:     x,
		Y:     y,
		Lat:   lat,
		Lng:   lng,
		Label: strings.TrimSpace(record[colLabel]),
	}, nil
}

func parseCoordinate(cr *csv.Reader, record []string, col int, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
	if err == nil && !(v >= -limit && v <= limit) {
		err = fmt.Errorf("%v outside [-%v, %v]", v, limit, limit)
	}
	if err != nil {
		line, column := cr.FieldPos(col)
		return 0, &RecordError{Line: line, Column: column, Err: err}
	}
	return v, nil
}

// LoadFile reads points from the CSV file at path.
func LoadFile(path string) ([]chameleon.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}
	defer f.Close()

	points, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}
