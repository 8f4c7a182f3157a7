package tensor

// Elementwise and linear-algebra arithmetic routes through the provider;
// the core only shapes inputs and outputs around the kernel calls.

// Map applies fn to every element, returning a fresh tensor.
func (t *Tensor) Map(fn func(float64) float64) (*Tensor, error) {
	return t.provider.Map(t, fn)
}

// Add computes t + operand elementwise. The operand is a scalar or a tensor
// of identical shape.
func (t *Tensor) Add(operand any) (*Tensor, error) {
	return t.provider.Apply(t, OpAdd, operand)
}

// Sub computes t - operand elementwise.
func (t *Tensor) Sub(operand any) (*Tensor, error) {
	return t.provider.Apply(t, OpSub, operand)
}

// Mul computes t * operand elementwise.
func (t *Tensor) Mul(operand any) (*Tensor, error) {
	return t.provider.Apply(t, OpMul, operand)
}

// Div computes t / operand elementwise.
func (t *Tensor) Div(operand any) (*Tensor, error) {
	return t.provider.Apply(t, OpDiv, operand)
}

// Scale multiplies every element by alpha.
func (t *Tensor) Scale(alpha any) (*Tensor, error) {
	return t.provider.LinAlg().Scale(alpha, t)
}

// Transpose swaps the axes of a rank-2 tensor.
func (t *Tensor) Transpose() (*Tensor, error) {
	return t.provider.LinAlg().Transpose(t)
}

// Dot computes the matrix (rank 2) or inner (rank 1) product with other.
func (t *Tensor) Dot(other *Tensor) (*Tensor, error) {
	return t.provider.LinAlg().Dot(t, other)
}

// Cross computes the cross product with another 3-element vector.
func (t *Tensor) Cross(other *Tensor) (*Tensor, error) {
	return t.provider.LinAlg().Cross(t, other)
}

// Softmax applies softmax along the last axis.
func (t *Tensor) Softmax() (*Tensor, error) {
	return t.provider.LinAlg().Softmax(t)
}
