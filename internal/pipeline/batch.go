package pipeline

import "github.com/google/uuid"

// Input is one batch item. MIME may be empty; Name carries the extension
// hint and becomes the base of the output name.
type Input struct {
	Name string
	MIME string
	Data []byte
}

// ProgressFunc observes batch progress. It is called synchronously before
// each file starts, with index counting from 1.
type ProgressFunc func(index, total int, name string)

// BatchResult aggregates one sequential run.
type BatchResult struct {
	// RunID correlates the run's log lines and its summary.
	RunID     string
	Files     []Result
	Succeeded int
	Failed    int
	// TotalInputSize and TotalCleanedSize sum every file, failures
	// included; a failed file contributes its original size to both.
	TotalInputSize   int64
	TotalCleanedSize int64
}

// ProcessBatch redacts inputs strictly in order, one at a time. A file's
// failure never stops the rest.
func (p *Pipeline) ProcessBatch(inputs []Input, progress ProgressFunc) BatchResult {
	batch := BatchResult{RunID: uuid.NewString()}
	p.log.Info("batch_started", "run_id", batch.RunID, "files", len(inputs))
	for i, in := range inputs {
		if progress != nil {
			progress(i+1, len(inputs), in.Name)
		}
		res := p.Process(in.Name, in.MIME, in.Data)
		batch.Files = append(batch.Files, res)
		batch.TotalInputSize += int64(len(in.Data))
		batch.TotalCleanedSize += int64(len(res.Data))
		if res.Success() {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	p.log.Info("batch_finished", "run_id", batch.RunID,
		"succeeded", batch.Succeeded, "failed", batch.Failed,
		"input_bytes", batch.TotalInputSize, "cleaned_bytes", batch.TotalCleanedSize)
	return batch
}
