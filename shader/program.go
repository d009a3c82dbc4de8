package shader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// CaseKind is the kind of contribution a case makes to the instruction
// stream.
type CaseKind uint8

const (
	// CaseSettings writes instance parameters into variant-scoped registers.
	CaseSettings CaseKind = iota
	// CaseCoords transforms the working coordinate.
	CaseCoords
	// CaseFunction computes a value, or pops a transformed coordinate.
	CaseFunction
)

// String returns the case kind name.
func (k CaseKind) String() string {
	switch k {
	case CaseSettings:
		return "settings"
	case CaseCoords:
		return "coords"
	case CaseFunction:
		return "function"
	}
	return fmt.Sprintf("CaseKind(%d)", uint8(k))
}

// Case is one deduplicated entry of the dispatch table.
type Case struct {
	// ID is the dispatch index, equal to the position in Program.Cases.
	ID int
	// Kind is the contribution kind.
	Kind CaseKind
	// Variant is the module variant that contributed the case.
	Variant noise.Kind
	// Stage is the coordinate stage index; zero for other kinds.
	Stage int
	// Text is the WGSL body of the case.
	Text string

	exec func(*machine)
}

// Program is the flattened instruction stream of a compiled graph in a
// form the host can execute. Execute follows the same dispatch loop,
// stacks and variant-scoped registers as the generated shader, so it is
// the reference for what the WGSL computes.
//
// A Program is immutable and safe for concurrent use.
type Program struct {
	cases       []Case
	code        []int
	notes       []string
	coordDepth  int
	resultDepth int
	kernels     []*kernel.Kernel
	registers   [noise.NumKinds]int

	pool sync.Pool
}

// Cases returns the dispatch table.
func (p *Program) Cases() []Case {
	out := make([]Case, len(p.cases))
	copy(out, p.cases)
	return out
}

// Instructions returns the instruction list as dispatch indices.
func (p *Program) Instructions() []int {
	out := make([]int, len(p.code))
	copy(out, p.code)
	return out
}

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.code) }

// CoordDepth returns the coordinate stack size.
func (p *Program) CoordDepth() int { return p.coordDepth }

// ResultDepth returns the result stack size.
func (p *Program) ResultDepth() int { return p.resultDepth }

// Kernels returns the noise kernels referenced by the program in table
// order.
func (p *Program) Kernels() []*kernel.Kernel {
	out := make([]*kernel.Kernel, len(p.kernels))
	copy(out, p.kernels)
	return out
}

// RegisterSize returns the length of the settings register file of a
// variant, or zero when the variant has no settings.
func (p *Program) RegisterSize(k noise.Kind) int { return p.registers[k] }

// machine is the execution state of one Execute call.
type machine struct {
	prog   *Program
	coords [][3]float64
	csp    int
	res    []float64
	rsp    int
	regs   [][]float64
	aux    []any
	turb   [3]float64

	trace     bool
	maxCoord  int
	maxResult int
}

func (p *Program) machine() *machine {
	if m, ok := p.pool.Get().(*machine); ok {
		return m
	}
	m := &machine{
		prog:   p,
		coords: make([][3]float64, p.coordDepth),
		res:    make([]float64, max(p.resultDepth, 1)),
		regs:   make([][]float64, noise.NumKinds),
		aux:    make([]any, noise.NumKinds),
	}
	for k, n := range p.registers {
		m.regs[k] = make([]float64, n)
	}
	return m
}

// Execute runs the instruction stream for (x, y, z) and returns the value
// left on the result stack.
func (p *Program) Execute(x, y, z float64) float64 {
	m := p.machine()
	v := m.run(x, y, z)
	p.pool.Put(m)
	return v
}

// Trace runs the instruction stream like Execute and also reports the
// highest coordinate and result stack heights reached.
func (p *Program) Trace(x, y, z float64) (value float64, maxCoord, maxResult int) {
	m := p.machine()
	m.trace = true
	v := m.run(x, y, z)
	maxCoord, maxResult = m.maxCoord, m.maxResult
	m.trace = false
	p.pool.Put(m)
	return v, maxCoord, maxResult
}

func (m *machine) run(x, y, z float64) float64 {
	m.coords[0] = [3]float64{x, y, z}
	m.csp = 1
	m.rsp = 0
	m.maxCoord, m.maxResult = 1, 0
	for _, id := range m.prog.code {
		m.prog.cases[id].exec(m)
	}
	return m.res[0]
}

func (m *machine) top() [3]float64 { return m.coords[m.csp-1] }

func (m *machine) pushCoord(x, y, z float64) {
	m.coords[m.csp] = [3]float64{x, y, z}
	m.csp++
	if m.trace && m.csp > m.maxCoord {
		m.maxCoord = m.csp
	}
}

func (m *machine) popCoord() { m.csp-- }

func (m *machine) push(v float64) {
	m.res[m.rsp] = v
	m.rsp++
	if m.trace && m.rsp > m.maxResult {
		m.maxResult = m.rsp
	}
}

func (m *machine) pop() float64 {
	m.rsp--
	return m.res[m.rsp]
}

// Listing returns a human readable listing of the instruction stream, one
// instruction per line with the module it was emitted for.
func (p *Program) Listing() string {
	var sb strings.Builder
	for pc, id := range p.code {
		c := p.cases[id]
		fmt.Fprintf(&sb, "%4d  case %-3d %-8s %-14s", pc, id, c.Kind, c.Variant)
		if c.Kind == CaseCoords {
			fmt.Fprintf(&sb, " stage %d", c.Stage)
		}
		if p.notes[pc] != "" {
			sb.WriteString("  ; ")
			sb.WriteString(p.notes[pc])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
