package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId   string = "trace_id"
	RequestId string = "request_id"
	Stage     string = "stage"
)

// PredictionStatus tracks a single request through the inference pipeline.
type PredictionStatus string

const (
	PredictionStatusReceived   PredictionStatus = "Received"
	PredictionStatusProcessing PredictionStatus = "Processing"
	PredictionStatusSuccess    PredictionStatus = "Success"
	PredictionStatusFailed     PredictionStatus = "Failed"
)

// PipelineStage names the step of the inference pipeline that produced an outcome.
type PipelineStage string

const (
	StageValidation     PipelineStage = "validation"
	StageTransformation PipelineStage = "transformation"
	StageScoring        PipelineStage = "scoring"
	StageAttribution    PipelineStage = "attribution"
	StageSelection      PipelineStage = "selection"
)
