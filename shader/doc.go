// Package shader compiles noise graphs into WGSL compute shaders.
//
// A graph is flattened into an instruction stream over a deduplicated case
// table. Each case is one of three kinds:
//
//   - settings: loads instance parameters into the register file of a
//     variant, immediately before the instance's function instruction
//   - coords: pushes a transformed coordinate, one stage at a time
//   - function: computes a value on the result stack, or pops a coordinate
//
// Identical settings and coordinate stages are emitted once in the case
// table however many instances produce them, and every variant has a
// single function case. The generated entry function runs the instruction
// list through a switch over the case table with a coordinate stack and a
// result stack sized exactly for the graph.
//
// The same stream executes on the host through Program, which follows the
// shader instruction for instruction and is used to check the generated
// code against noise.Evaluate:
//
//	res, err := shader.Compile(graph)
//	if err != nil {
//		return err
//	}
//	wgsl := res.Source()
//	v := res.Program.Execute(1.5, 0.25, -3)
//
// SPIRV compiles the module with naga for drivers that take SPIR-V.
package shader
