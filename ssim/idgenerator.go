package ssim

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

var idGeneratorMutex sync.Mutex
var idGeneratorInstantiated bool
var idGenerator IDGenerator

// IDGenerator mints the stable string IDs attached to every dispatched
// action (see ActionSnapshot.ID), used by the tracing package to
// correlate one action's Records across multiple backends.
type IDGenerator interface {
	Generate() string
}

// UseSequentialIDGenerator switches to deterministic, monotonically
// increasing decimal IDs. Must be called before the generator is first
// used (by Generate or implicitly by the first enqueued action); calling
// it afterward panics, since IDs already minted cannot be retagged.
func UseSequentialIDGenerator() {
	if idGeneratorInstantiated {
		log.Panic("ssim: cannot change id generator type after using it")
	}

	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGeneratorInstantiated {
		log.Panic("ssim: cannot change id generator type after using it")
	}

	idGenerator = &sequentialIDGenerator{}
	idGeneratorInstantiated = true
}

// UseParallelIDGenerator switches to globally unique, non-deterministic
// IDs minted via xid, suited to correlating traces written concurrently
// from more than one process image. Same late-switch panic as
// UseSequentialIDGenerator.
func UseParallelIDGenerator() {
	if idGeneratorInstantiated {
		log.Panic("ssim: cannot change id generator type after using it")
	}

	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGeneratorInstantiated {
		log.Panic("ssim: cannot change id generator type after using it")
	}

	idGenerator = &parallelIDGenerator{}
	idGeneratorInstantiated = true
}

// GetIDGenerator returns the generator in effect, defaulting to the
// sequential one on first use if neither Use*IDGenerator was called.
func GetIDGenerator() IDGenerator {
	if idGeneratorInstantiated {
		return idGenerator
	}

	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGeneratorInstantiated {
		return idGenerator
	}

	idGenerator = &sequentialIDGenerator{}
	idGeneratorInstantiated = true
	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	id := strconv.FormatUint(idNumber, 10)
	return id
}

type parallelIDGenerator struct {
}

func (g parallelIDGenerator) Generate() string {
	return xid.New().String()
}
