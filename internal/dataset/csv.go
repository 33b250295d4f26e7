package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var ErrEmptyHeader = errors.New("csv header is empty")

// ReadCSV 读取面板数据：首行为表头，其后每行为一个时间点。
// 空单元格视为 NaN，支持 NaN / Inf / -Inf 字面量。
func ReadCSV(path string) (*Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w", path, err)
	}
	defer f.Close()

	p, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s failed: %w", path, err)
	}
	return p, nil
}

func DecodeCSV(r io.Reader) (*Panel, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyHeader
		}
		return nil, err
	}
	if len(header) == 0 {
		return nil, ErrEmptyHeader
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	p := &Panel{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		for col, cell := range record {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", p.Rows+1, columns[col], err)
			}
			p.Values = append(p.Values, v)
		}
		p.Rows++
	}
	return p, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

// WriteCSV 写出面板数据，NaN 写为空单元格
func WriteCSV(path string, p *Panel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", path, err)
	}

	if err := EncodeCSV(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s failed: %w", path, err)
	}
	return f.Close()
}

func EncodeCSV(w io.Writer, p *Panel) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(p.Columns); err != nil {
		return err
	}

	cols := p.Cols()
	record := make([]string, cols)
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < cols; col++ {
			record[col] = formatCell(p.Values[row*cols+col])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
