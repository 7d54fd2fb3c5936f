package pool

import (
	"sync"

	"github.com/arloliu/meshpack/buffer"
)

// Scratch buffer sizing.
const (
	BodyBufferDefaultSize  = 1024 * 64       // 64KiB
	BodyBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// BufferPool is a pool of scratch buffers.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put so a single
// large geometry does not pin memory for the lifetime of the process.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a pool whose buffers start with defaultSize capacity.
func NewBufferPool(defaultSize int, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return buffer.New(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty buffer from the pool.
func (p *BufferPool) Get() *buffer.Buffer {
	bb, _ := p.pool.Get().(*buffer.Buffer)
	return bb
}

// Put returns a buffer to the pool.
func (p *BufferPool) Put(bb *buffer.Buffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && bb.Cap() > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var bodyPool = NewBufferPool(BodyBufferDefaultSize, BodyBufferMaxThreshold)

// GetBodyBuffer retrieves a scratch buffer for an encoder body.
func GetBodyBuffer() *buffer.Buffer {
	return bodyPool.Get()
}

// PutBodyBuffer returns a scratch buffer obtained from GetBodyBuffer.
func PutBodyBuffer(bb *buffer.Buffer) {
	bodyPool.Put(bb)
}
