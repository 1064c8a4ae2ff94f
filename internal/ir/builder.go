package ir

// Builder constructs operations against a context while tracking an
// insertion point and a current location, so dialect constructors do not
// need to thread both through every call.
type Builder struct {
	ctx   *Context
	block *Block
	loc   Location
}

// NewBuilder returns a builder with no insertion point and the unknown
// location.
func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

// Context returns the builder's context.
func (b *Builder) Context() *Context { return b.ctx }

// SetInsertionPoint makes subsequent operations append to blk. A nil block
// detaches the builder; created operations then float free.
func (b *Builder) SetInsertionPoint(blk *Block) { b.block = blk }

// InsertionPoint returns the current insertion block, or nil.
func (b *Builder) InsertionPoint() *Block { return b.block }

// SetLocation sets the location attached to subsequently created operations.
func (b *Builder) SetLocation(loc Location) { b.loc = loc }

// Location returns the builder's current location.
func (b *Builder) Location() Location { return b.loc }

// Create constructs an operation, filling in the builder's location and
// insertion point where the state leaves them unset.
func (b *Builder) Create(state OperationState) (*Operation, error) {
	if state.Location.IsUnknown() {
		state.Location = b.loc
	}
	if state.Block == nil {
		state.Block = b.block
	}
	return b.ctx.CreateOperation(state)
}
