package duel

// MockSource is a scripted random source for tests. Float64 values and
// Intn values are consumed in order; when a script runs out the zero
// value is returned, which resolves every remaining duel as a success.
type MockSource struct {
	Floats []float64
	Ints   []int

	floatIdx int
	intIdx   int
}

// NewMock creates a scripted source.
func NewMock(floats []float64, ints []int) *MockSource {
	return &MockSource{Floats: floats, Ints: ints}
}

func (m *MockSource) Float64() float64 {
	if m.floatIdx >= len(m.Floats) {
		return 0
	}
	v := m.Floats[m.floatIdx]
	m.floatIdx++
	return v
}

func (m *MockSource) Intn(n int) int {
	if m.intIdx >= len(m.Ints) {
		return 0
	}
	v := m.Ints[m.intIdx]
	m.intIdx++
	if v >= n {
		return n - 1
	}
	return v
}
