package ir

import "fmt"

// Value is an edge in the def-use graph: either a result of an operation or
// an argument of a block.
type Value interface {
	Type() Type
	String() string
	isValue()
}

// OpResult is a value produced by an operation.
type OpResult struct {
	owner *Operation
	index int
	ty    Type
}

// Owner returns the operation producing this result.
func (r *OpResult) Owner() *Operation { return r.owner }

// Index returns the result position within the owner.
func (r *OpResult) Index() int { return r.index }

// Type returns the result type.
func (r *OpResult) Type() Type { return r.ty }

func (r *OpResult) String() string {
	return fmt.Sprintf("<result %d of %s : %s>", r.index, r.owner.Name(), r.ty)
}

func (*OpResult) isValue() {}

// BlockArgument is a value supplied by a block.
type BlockArgument struct {
	owner *Block
	index int
	ty    Type
}

// Owner returns the block owning this argument.
func (a *BlockArgument) Owner() *Block { return a.owner }

// Index returns the argument position within the block.
func (a *BlockArgument) Index() int { return a.index }

// Type returns the argument type.
func (a *BlockArgument) Type() Type { return a.ty }

func (a *BlockArgument) String() string {
	return fmt.Sprintf("<block argument %d : %s>", a.index, a.ty)
}

func (*BlockArgument) isValue() {}
