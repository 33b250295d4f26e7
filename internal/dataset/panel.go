package dataset

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Panel 行为时间、列为标的的矩阵，按行存储（标的下标变化最快），即截面排名所需的布局
type Panel struct {
	Columns []string
	Rows    int
	Values  []float64 // len = Rows * len(Columns)
}

func NewPanel(columns []string, rows int) *Panel {
	return &Panel{
		Columns: columns,
		Rows:    rows,
		Values:  make([]float64, rows*len(columns)),
	}
}

func (p *Panel) Cols() int {
	return len(p.Columns)
}

func (p *Panel) At(row, col int) float64 {
	return p.Values[row*p.Cols()+col]
}

// ColumnMajor 转为按列连续存储，每个标的的时间序列是一段连续分块
func (p *Panel) ColumnMajor() []float64 {
	cols := p.Cols()
	out := make([]float64, len(p.Values))
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < cols; col++ {
			out[col*p.Rows+row] = p.Values[row*cols+col]
		}
	}
	return out
}

// FromColumnMajor 以相同表头构造新 Panel，data 为按列连续存储的数据
func (p *Panel) FromColumnMajor(data []float64) (*Panel, error) {
	if len(data) != len(p.Values) {
		return nil, fmt.Errorf("column major data length mismatch: got=%d, want=%d", len(data), len(p.Values))
	}

	cols := p.Cols()
	out := NewPanel(p.Columns, p.Rows)
	for col := 0; col < cols; col++ {
		for row := 0; row < p.Rows; row++ {
			out.Values[row*cols+col] = data[col*p.Rows+row]
		}
	}
	return out, nil
}

// WithValues 以相同表头包装按行存储的数据
func (p *Panel) WithValues(data []float64) (*Panel, error) {
	if len(data) != len(p.Values) {
		return nil, fmt.Errorf("row major data length mismatch: got=%d, want=%d", len(data), len(p.Values))
	}
	return &Panel{Columns: p.Columns, Rows: p.Rows, Values: data}, nil
}

// Digest 结果指纹，用于校验并行计算的确定性。NaN 统一按规范 NaN 计算。
func Digest(values []float64) uint64 {
	var buf [8]byte
	d := xxhash.New()
	for _, v := range values {
		if math.IsNaN(v) {
			v = math.NaN()
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
