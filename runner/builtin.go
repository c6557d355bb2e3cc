// File: builtin.go
// Role: default KernelFuncs for the structural actor subtypes srdag
// splices into a graph (Fork/Join/Duplicate/Head/Tail/Repeat/Init/End).
// Their byte-level semantics follow directly from their port topology,
// so hosts never register_kernel these by hand; execute falls back here
// only when no explicit registration shadows the vertex's name.
package runner

import (
	"fmt"

	"github.com/spiderflow/pisdf/pisdf"
)

func builtinKernel(subtype pisdf.Subtype) (KernelFunc, bool) {
	switch subtype {
	case pisdf.Fork:
		return forkKernel, true
	case pisdf.Join:
		return joinKernel, true
	case pisdf.Duplicate:
		return duplicateKernel, true
	case pisdf.Head:
		return headKernel, true
	case pisdf.Tail:
		return tailKernel, true
	case pisdf.Repeat:
		return repeatKernel, true
	case pisdf.Init:
		return initKernel, true
	case pisdf.End:
		return endKernel, true
	default:
		return nil, false
	}
}

// forkKernel splits its single input across outputs in port order.
func forkKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(inputs) != 1 {
		return fmt.Errorf("%w: fork wants 1 input, got %d", ErrPortSizeMismatch, len(inputs))
	}
	src := inputs[0]
	var off int
	for _, out := range outputs {
		if off+len(out) > len(src) {
			return fmt.Errorf("%w: fork input too short", ErrPortSizeMismatch)
		}
		copy(out, src[off:off+len(out)])
		off += len(out)
	}
	if off != len(src) {
		return fmt.Errorf("%w: fork input longer than sum of outputs", ErrPortSizeMismatch)
	}
	return nil
}

// joinKernel concatenates its inputs, in port order, into the one output.
func joinKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(outputs) != 1 {
		return fmt.Errorf("%w: join wants 1 output, got %d", ErrPortSizeMismatch, len(outputs))
	}
	dst := outputs[0]
	var off int
	for _, in := range inputs {
		if off+len(in) > len(dst) {
			return fmt.Errorf("%w: join output too short", ErrPortSizeMismatch)
		}
		copy(dst[off:off+len(in)], in)
		off += len(in)
	}
	if off != len(dst) {
		return fmt.Errorf("%w: join output longer than sum of inputs", ErrPortSizeMismatch)
	}
	return nil
}

// duplicateKernel copies its single input to every output unchanged.
func duplicateKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(inputs) != 1 {
		return fmt.Errorf("%w: duplicate wants 1 input, got %d", ErrPortSizeMismatch, len(inputs))
	}
	for _, out := range outputs {
		if len(out) != len(inputs[0]) {
			return fmt.Errorf("%w: duplicate output size mismatch", ErrPortSizeMismatch)
		}
		copy(out, inputs[0])
	}
	return nil
}

// headKernel copies the leading bytes of its input into its output.
func headKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(inputs) != 1 || len(outputs) != 1 {
		return fmt.Errorf("%w: head wants 1 input and 1 output", ErrPortSizeMismatch)
	}
	if len(outputs[0]) > len(inputs[0]) {
		return fmt.Errorf("%w: head output longer than input", ErrPortSizeMismatch)
	}
	copy(outputs[0], inputs[0][:len(outputs[0])])
	return nil
}

// tailKernel copies the trailing bytes of its input into its output.
func tailKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(inputs) != 1 || len(outputs) != 1 {
		return fmt.Errorf("%w: tail wants 1 input and 1 output", ErrPortSizeMismatch)
	}
	start := len(inputs[0]) - len(outputs[0])
	if start < 0 {
		return fmt.Errorf("%w: tail output longer than input", ErrPortSizeMismatch)
	}
	copy(outputs[0], inputs[0][start:])
	return nil
}

// repeatKernel tiles its input cyclically to fill its output.
func repeatKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	if len(inputs) != 1 || len(outputs) != 1 {
		return fmt.Errorf("%w: repeat wants 1 input and 1 output", ErrPortSizeMismatch)
	}
	src, dst := inputs[0], outputs[0]
	if len(src) == 0 {
		if len(dst) == 0 {
			return nil
		}
		return fmt.Errorf("%w: repeat has empty input but non-empty output", ErrPortSizeMismatch)
	}
	for i := range dst {
		dst[i] = src[i%len(src)]
	}
	return nil
}

// initKernel writes a delay's preset tokens at iteration start. Without
// a modeled initial-value payload, those tokens are zero; make already
// zero-fills outputs[0], so there is nothing left to do.
func initKernel(_ []int64, _ []int64, _ [][]byte, _ [][]byte) error {
	return nil
}

// endKernel discards the residual tokens an End actor collects; the
// persistent-delay buffer they were read from is preserved by the FIFO
// allocator reusing the same address across iterations, not by this
// kernel.
func endKernel(_ []int64, _ []int64, _ [][]byte, _ [][]byte) error {
	return nil
}
