package shader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// formatFloat renders v as a WGSL abstract float literal.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "(0.0 / 0.0)"
	case math.IsInf(v, 1):
		return "3.4e38"
	case math.IsInf(v, -1):
		return "-3.4e38"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func formatVec3(x, y, z float64) string {
	return fmt.Sprintf("vec3<f32>(%s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z))
}

func formatIVec3(v kernel.IVec3) string {
	return fmt.Sprintf("vec3<i32>(%d, %d, %d)", v.X, v.Y, v.Z)
}

// snakeName converts a variant name such as "ScaleBias" to "scale_bias".
func snakeName(k noise.Kind) string {
	name := k.String()
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// registerName returns the name of the settings register file of k.
func registerName(k noise.Kind) string { return snakeName(k) + "_s" }

// indent prefixes every non-empty line of text with prefix.
func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// assembleHeader renders the declarations every case body relies on:
// helper functions in dependency order followed by one block per variant
// in first-use order.
func (c *Context) assembleHeader() string {
	var sb strings.Builder
	sb.WriteString("// Generated noise graph. Do not edit.\n\n")
	for _, name := range c.helperOrder {
		if name == helperPerm {
			sb.WriteString(permTables(c.prog.kernels))
		} else {
			sb.WriteString(helpers[name].text)
		}
		sb.WriteByte('\n')
	}
	for _, k := range c.headerOrder {
		fmt.Fprintf(&sb, "// %s\n", k)
		if n := c.prog.registers[k]; n > 0 {
			fmt.Fprintf(&sb, "var<private> %s: array<f32, %d>;\n", registerName(k), n)
		}
		if k == noise.KindTurbulence {
			sb.WriteString("var<private> turbulence_d: vec3<f32>;\n")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// assembleBody renders the instruction list, the dispatch loop over the
// case table and the entry points.
func (c *Context) assembleBody() string {
	p := c.prog
	var sb strings.Builder
	name := c.opts.entryName

	fmt.Fprintf(&sb, "fn %s(x: f32, y: f32, z: f32) -> f32 {\n", name)
	fmt.Fprintf(&sb, "    var program = array<u32, %d>(", len(p.code))
	for i, id := range p.code {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i%16 == 0 {
			sb.WriteString("\n        ")
		}
		fmt.Fprintf(&sb, "%du", id)
	}
	sb.WriteString("\n    );\n")
	fmt.Fprintf(&sb, "    var coord_stack: array<vec3<f32>, %d>;\n", p.coordDepth)
	fmt.Fprintf(&sb, "    var result_stack: array<f32, %d>;\n", max(p.resultDepth, 1))
	sb.WriteString("    coord_stack[0] = vec3<f32>(x, y, z);\n")
	sb.WriteString("    var csp = 1u;\n")
	sb.WriteString("    var rsp = 0u;\n")
	fmt.Fprintf(&sb, "    for (var pc = 0u; pc < %du; pc = pc + 1u) {\n", len(p.code))
	sb.WriteString("        switch program[pc] {\n")
	for _, cs := range p.cases {
		fmt.Fprintf(&sb, "            // %s %s", cs.Variant, cs.Kind)
		if cs.Kind == CaseCoords {
			fmt.Fprintf(&sb, " %d", cs.Stage)
		}
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "            case %du: {\n", cs.ID)
		sb.WriteString(indent(cs.Text, "                "))
		sb.WriteString("            }\n")
	}
	sb.WriteString("            default: {}\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")
	sb.WriteString("    return result_stack[0];\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "fn %s(x: f32, y: f32) -> f32 {\n", c.opts.planeName)
	fmt.Fprintf(&sb, "    return %s(x, y, 0.0);\n", name)
	sb.WriteString("}\n")

	if c.opts.computeEntry {
		fmt.Fprintf(&sb, `
@group(0) @binding(0) var<storage, read> positions: array<vec4<f32>>;
@group(0) @binding(1) var<storage, read_write> values: array<f32>;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= arrayLength(&values)) {
        return;
    }
    let p = positions[i];
    values[i] = %s(p.x, p.y, p.z);
}
`, c.opts.workgroupSize, name)
	}
	return sb.String()
}
