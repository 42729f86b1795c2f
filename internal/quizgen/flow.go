package quizgen

import (
	"github.com/abhisek/quizzy/internal/quiz"
)

// FlowPath is the route of the quiz generation flow.
const FlowPath = "/api/quiz-suggestions"

// FlowRequest is the body posted to a generation flow: the input wrapped
// in a "data" envelope.
type FlowRequest struct {
	Data quiz.Configuration `json:"data"`
}

// FlowOutput is the flow's result payload.
type FlowOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// FlowError is the error envelope a flow returns instead of a result.
type FlowError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FlowResponse is the reply from a generation flow. Exactly one of Result
// and Error is set.
type FlowResponse struct {
	Result *FlowOutput `json:"result,omitempty"`
	Error  *FlowError  `json:"error,omitempty"`
}
