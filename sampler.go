package collsim

// sampler.go holds the sources of the per-packet transmission delay

import (
	"math/rand/v2"

	"github.com/iti/rngstream"
	"gonum.org/v1/gonum/stat/distuv"
)

// bounds of the uniform transmission delay, in milliseconds
const (
	MinDelay = 1.0
	MaxDelay = 10.0
)

// names of the delay samplers SimParams may select
const (
	SamplerUniform = "uniform"
	SamplerStream  = "stream"
)

// SamplerNames lists the accepted values of SimParams.Sampler
var SamplerNames = []string{SamplerUniform, SamplerStream}

// DelaySampler gives the engine one delay value per generated packet
type DelaySampler interface {
	Sample() float64
}

// UniformSampler draws delays uniformly from [MinDelay, MaxDelay] using a
// seeded PCG source, so that equal seeds give equal sequences
type UniformSampler struct {
	dist distuv.Uniform
}

// CreateUniformSampler is a constructor
func CreateUniformSampler(seed uint64) *UniformSampler {
	us := new(UniformSampler)
	us.dist = distuv.Uniform{
		Min: MinDelay,
		Max: MaxDelay,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
	return us
}

// Sample returns the next delay
func (us *UniformSampler) Sample() float64 {
	return us.dist.Rand()
}

// StreamSampler draws delays from a named rngstream, the way every
// network device carries its own stream
type StreamSampler struct {
	Rngstrm *rngstream.RngStream
}

// CreateStreamSampler is a constructor
func CreateStreamSampler(name string) *StreamSampler {
	ss := new(StreamSampler)
	ss.Rngstrm = rngstream.New(name)
	return ss
}

// Sample returns the next delay
func (ss *StreamSampler) Sample() float64 {
	return MinDelay + (MaxDelay-MinDelay)*ss.Rngstrm.RandU01()
}

// CreateDelaySampler returns the sampler named by sp.Sampler.  The uniform
// sampler is seeded from sp.Seed, the stream sampler is named for the experiment.
func CreateDelaySampler(sp *SimParams) DelaySampler {
	if sp.Sampler == SamplerStream {
		return CreateStreamSampler(sp.ExpName + "-delay")
	}
	return CreateUniformSampler(sp.Seed)
}
