package ir

// Region is an ordered list of blocks owned by a parent operation.
type Region struct {
	owner  *Operation
	blocks []*Block
}

// Owner returns the operation owning this region.
func (r *Region) Owner() *Operation { return r.owner }

// AppendBlock appends a new block whose arguments correspond
// index-for-index to the given types. The first appended block is block 0.
func (r *Region) AppendBlock(argTypes ...Type) *Block {
	blk := &Block{parent: r}
	for i, ty := range argTypes {
		blk.args = append(blk.args, &BlockArgument{owner: blk, index: i, ty: ty})
	}
	r.blocks = append(r.blocks, blk)
	return blk
}

// NumBlocks returns the block count.
func (r *Region) NumBlocks() int { return len(r.blocks) }

// Block returns the i-th block.
func (r *Region) Block(i int) *Block { return r.blocks[i] }

// Blocks returns the blocks in order.
func (r *Region) Blocks() []*Block { return append([]*Block(nil), r.blocks...) }

// Block is an ordered container of operations with typed arguments.
type Block struct {
	parent *Region
	args   []*BlockArgument
	ops    []*Operation
}

// Parent returns the owning region.
func (b *Block) Parent() *Region { return b.parent }

// NumArguments returns the argument count.
func (b *Block) NumArguments() int { return len(b.args) }

// Argument returns the i-th block argument.
func (b *Block) Argument(i int) *BlockArgument { return b.args[i] }

// Arguments returns the block arguments in order.
func (b *Block) Arguments() []*BlockArgument {
	return append([]*BlockArgument(nil), b.args...)
}

// ArgumentValues returns the block arguments as values, in order.
func (b *Block) ArgumentValues() []Value {
	out := make([]Value, len(b.args))
	for i, a := range b.args {
		out[i] = a
	}
	return out
}

// Operations returns the operations in the block, in order.
func (b *Block) Operations() []*Operation { return append([]*Operation(nil), b.ops...) }

func (b *Block) append(op *Operation) {
	b.ops = append(b.ops, op)
	op.parent = b
}
