package shader

import (
	"fmt"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// Result is the output of compiling one graph.
type Result struct {
	// Header holds the helper functions, kernel tables and settings
	// register declarations, one block per variant in use.
	Header string
	// Body holds the entry function with the instruction list and the
	// dispatch loop, the plane mapping function and the optional compute
	// entry point.
	Body string

	// CoordDepth and ResultDepth are the stack sizes the body declares.
	CoordDepth  int
	ResultDepth int

	// Program is the host-executable form of the same instruction stream.
	Program *Program
}

// Source returns the complete WGSL module.
func (r *Result) Source() string { return r.Header + r.Body }

// Context compiles one noise graph into a WGSL module.
//
// A Context is single use: the deduplication tables it builds are tied to
// the graph compiled. Context is not safe for concurrent use.
type Context struct {
	opts options
	used bool

	prog  *Program
	namer *noise.Namer

	settingsIDs map[string]int
	coordIDs    map[coordKey]int
	functionIDs [noise.NumKinds]int
	kernelIDs   map[*kernel.Kernel]int

	headerSeen  [noise.NumKinds]bool
	headerOrder []noise.Kind
	helperSeen  map[string]bool
	helperOrder []string
}

type coordKey struct {
	variant noise.Kind
	stage   int
	text    string
}

// NewContext returns a Context configured by opts.
func NewContext(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		opts:        o,
		prog:        &Program{},
		namer:       noise.NewNamer(),
		settingsIDs: make(map[string]int),
		coordIDs:    make(map[coordKey]int),
		kernelIDs:   make(map[*kernel.Kernel]int),
		helperSeen:  make(map[string]bool),
	}
	for i := range c.functionIDs {
		c.functionIDs[i] = -1
	}
	return c
}

// Compile lowers the graph rooted at root. Every module contributes its
// cases and instructions in evaluation order; a module reached through
// several parents contributes instructions each time it is reached but
// its cases only once.
//
// Compile returns ErrUnsupportedModule, without producing any text, when
// the graph holds a module the compiler has no lowering for.
func (c *Context) Compile(root noise.Module) (*Result, error) {
	if c.used {
		return nil, ErrContextUsed
	}
	c.used = true

	if err := noise.Validate(root); err != nil {
		return nil, err
	}
	if err := c.emit(root); err != nil {
		return nil, err
	}
	coord, result, err := newDepthPass().bounds(root)
	if err != nil {
		return nil, err
	}
	c.prog.coordDepth = coord
	c.prog.resultDepth = result

	res := &Result{
		Header:      c.assembleHeader(),
		Body:        c.assembleBody(),
		CoordDepth:  coord,
		ResultDepth: result,
		Program:     c.prog,
	}

	noise.Logger().Debug("shader: compiled graph",
		"cases", len(c.prog.cases),
		"instructions", len(c.prog.code),
		"kernels", len(c.prog.kernels),
		"coordDepth", coord,
		"resultDepth", result,
	)
	return res, nil
}

// Compile compiles root with a fresh Context.
func Compile(root noise.Module, opts ...Option) (*Result, error) {
	return NewContext(opts...).Compile(root)
}

// addCase appends a case to the dispatch table and returns its id.
func (c *Context) addCase(kind CaseKind, variant noise.Kind, stage int, text string, exec func(*machine)) int {
	id := len(c.prog.cases)
	c.prog.cases = append(c.prog.cases, Case{
		ID:      id,
		Kind:    kind,
		Variant: variant,
		Stage:   stage,
		Text:    text,
		exec:    exec,
	})
	return id
}

// instruction appends one instruction referencing case id.
func (c *Context) instruction(id int, m noise.Module) {
	c.prog.code = append(c.prog.code, id)
	c.prog.notes = append(c.prog.notes, c.namer.Name(m))
}

// header records that variant k is in use and pulls in its helpers.
func (c *Context) header(k noise.Kind, helpers ...string) {
	if !c.headerSeen[k] {
		c.headerSeen[k] = true
		c.headerOrder = append(c.headerOrder, k)
	}
	for _, h := range helpers {
		c.requireHelper(h)
	}
}

func (c *Context) requireHelper(name string) {
	if c.helperSeen[name] {
		return
	}
	c.helperSeen[name] = true
	for _, dep := range helpers[name].deps {
		c.requireHelper(dep)
	}
	c.helperOrder = append(c.helperOrder, name)
}

// kernelIndex registers k in the program kernel table.
func (c *Context) kernelIndex(k *kernel.Kernel) int {
	if i, ok := c.kernelIDs[k]; ok {
		return i
	}
	i := len(c.prog.kernels)
	c.kernelIDs[k] = i
	c.prog.kernels = append(c.prog.kernels, k)
	return i
}

// settings emits the instruction that loads values into the register file
// of m's variant. Instances with identical values share one case. aux is
// host-side decoded data handed to the function case alongside.
func (c *Context) settings(m noise.Module, values []float64, aux any) {
	k := m.Kind()
	c.prog.registers[k] = max(c.prog.registers[k], len(values))

	text := settingsText(k, values)
	id, ok := c.settingsIDs[text]
	if !ok {
		vals := append([]float64(nil), values...)
		id = c.addCase(CaseSettings, k, 0, text, func(vm *machine) {
			copy(vm.regs[k], vals)
			vm.aux[k] = aux
		})
		c.settingsIDs[text] = id
	}
	c.instruction(id, m)
}

// coords emits coordinate stage instruction of m. Stages whose rendered
// text matches share one case.
func (c *Context) coords(m noise.Module, stage int, text string, exec func(*machine)) {
	key := coordKey{variant: m.Kind(), stage: stage, text: text}
	id, ok := c.coordIDs[key]
	if !ok {
		id = c.addCase(CaseCoords, m.Kind(), stage, text, exec)
		c.coordIDs[key] = id
	}
	c.instruction(id, m)
}

// function emits the function instruction of m. Every variant has one
// function case.
func (c *Context) function(m noise.Module) {
	k := m.Kind()
	id := c.functionIDs[k]
	if id < 0 {
		fn := functions[k]
		id = c.addCase(CaseFunction, k, 0, fn.text, fn.exec)
		c.functionIDs[k] = id
	}
	c.instruction(id, m)
}

// sources emits the given sources of m in order.
func (c *Context) sources(m noise.Module, idx ...int) error {
	for _, i := range idx {
		if err := c.emit(m.Source(i)); err != nil {
			return err
		}
	}
	return nil
}

func settingsText(k noise.Kind, values []float64) string {
	reg := registerName(k)
	text := ""
	for i, v := range values {
		text += fmt.Sprintf("%s[%d] = %s;\n", reg, i, formatFloat(v))
	}
	return text
}
