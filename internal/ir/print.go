package ir

import (
	"fmt"
	"strings"
)

// Print renders an operation tree in generic form: quoted operation names,
// positional operands, inline regions, the attribute dictionary and a
// trailing function-type signature. Value names are assigned in definition
// order, so output is deterministic for a given tree.
func Print(op *Operation) string {
	p := &printer{names: make(map[Value]string)}
	var b strings.Builder
	p.printOp(&b, op, 0)
	return b.String()
}

type printer struct {
	names      map[Value]string
	nextResult int
	nextArg    int
}

func (p *printer) name(v Value) string {
	if n, ok := p.names[v]; ok {
		return n
	}
	var n string
	if _, isArg := v.(*BlockArgument); isArg {
		n = fmt.Sprintf("%%arg%d", p.nextArg)
		p.nextArg++
	} else {
		n = fmt.Sprintf("%%%d", p.nextResult)
		p.nextResult++
	}
	p.names[v] = n
	return n
}

func (p *printer) printOp(b *strings.Builder, op *Operation, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(pad)

	if op.NumResults() > 0 {
		for i, r := range op.Results() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.name(r))
		}
		b.WriteString(" = ")
	}

	fmt.Fprintf(b, "%q(", op.Name())
	for i, operand := range op.Operands() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.name(operand))
	}
	b.WriteByte(')')

	if op.NumRegions() > 0 {
		b.WriteString(" (")
		for i := 0; i < op.NumRegions(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			p.printRegion(b, op.Region(i), indent)
		}
		b.WriteByte(')')
	}

	if op.Attributes().Len() > 0 {
		b.WriteByte(' ')
		b.WriteString(op.Attributes().String())
	}

	b.WriteString(" : (")
	for i, operand := range op.Operands() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(operand.Type().String())
	}
	b.WriteString(") -> (")
	for i, r := range op.Results() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.Type().String())
	}
	b.WriteByte(')')
}

func (p *printer) printRegion(b *strings.Builder, region *Region, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString("{\n")
	for i, blk := range region.Blocks() {
		fmt.Fprintf(b, "%s^bb%d(", pad, i)
		for j, arg := range blk.Arguments() {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.name(arg))
			b.WriteString(": ")
			b.WriteString(arg.Type().String())
		}
		b.WriteString("):\n")
		for _, inner := range blk.Operations() {
			p.printOp(b, inner, indent+2)
			b.WriteByte('\n')
		}
	}
	b.WriteString(pad)
	b.WriteByte('}')
}
