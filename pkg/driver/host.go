package driver

// HostPort is the minimal stand-in for the consumed host audio interface
// (spec §6): named scalar input/output ports at a fixed, shared sample
// rate, fed and drained a block at a time. A full plugin host framework is
// out of scope; this is the thin adapter a real one would sit behind.
type HostPort struct {
	model *Model

	inputRate  float64
	outputRate float64

	inputPorts  [][]float64 // inputPorts[k] is the most recent block for port k
	outputPorts [][]float64 // outputPorts[k] is the most recent block for port k
}

func NewHostPort(m *Model, nIn, nOut int) *HostPort {
	return &HostPort{
		model:       m,
		inputPorts:  make([][]float64, nIn),
		outputPorts: make([][]float64, nOut),
	}
}

func (h *HostPort) SetInputSamplingRate(rate float64)  { h.inputRate = rate }
func (h *HostPort) SetOutputSamplingRate(rate float64) { h.outputRate = rate }

// SetInputPort assigns port k's source block ahead of Process.
func (h *HostPort) SetInputPort(k int, block []float64) { h.inputPorts[k] = block }

// GetOutputArray returns port k's most recently produced block.
func (h *HostPort) GetOutputArray(k int) []float64 { return h.outputPorts[k] }

// Process runs the model for size samples, reading across inputPorts[*][n]
// and scattering into outputPorts[*][n].
func (h *HostPort) Process(size int) error {
	if err := h.model.Setup(h.inputRate, h.outputRate); err != nil {
		return err
	}

	for k := range h.outputPorts {
		h.outputPorts[k] = make([]float64, size)
	}

	nIn := len(h.inputPorts)
	sample := make([]float64, nIn)
	for n := 0; n < size; n++ {
		for k, block := range h.inputPorts {
			if n < len(block) {
				sample[k] = block[n]
			}
		}
		out := h.model.ProcessSample(sample)
		for k := range h.outputPorts {
			if k < len(out) {
				h.outputPorts[k][n] = out[k]
			}
		}
	}
	return nil
}
