package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/agent/conversation"
	"github.com/securebank/callcenter-agent/agent/intent"
	"github.com/securebank/callcenter-agent/agent/planner"
	"github.com/securebank/callcenter-agent/agent/respond"
)

type turnInput struct {
	conv    *conversation.Context
	message string
}

// turnState is threaded through the graph nodes; each node fills in its
// part and passes the state along.
type turnState struct {
	conv    *conversation.Context
	message string

	intent   contract.Intent
	calls    []contract.ToolCall
	outcomes []contract.ToolOutcome
	response string
}

func (a *Agent) compileTurnGraph(ctx context.Context) (compose.Runnable[turnInput, contract.TurnResult], error) {
	graph := compose.NewGraph[turnInput, contract.TurnResult]()

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in turnInput) (*turnState, error) {
			detected := intent.Classify(in.message)
			in.conv.AddIntent(detected)
			return &turnState{conv: in.conv, message: in.message, intent: detected}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("plan_tools",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			in.calls = planner.Plan(in.conv, in.intent, in.message)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node plan_tools: %w", err)
	}

	if err := graph.AddLambdaNode("execute_tools",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			for _, call := range in.calls {
				result := a.executor.Execute(ctx, call.Name, call.Parameters, in.conv)
				in.outcomes = append(in.outcomes, contract.ToolOutcome{Tool: call.Name, Result: result})
				in.conv.AddToolResult(call.Name, result)
			}
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_tools: %w", err)
	}

	if err := graph.AddLambdaNode("install_session",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			for _, outcome := range in.outcomes {
				a.installCustomerSession(ctx, in.conv, outcome.Result)
			}
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node install_session: %w", err)
	}

	if err := graph.AddLambdaNode("generate_response",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			in.response = respond.Generate(in.conv, in.outcomes)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node generate_response: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_turn",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (contract.TurnResult, error) {
			in.conv.AddAssistantMessage(in.response)

			toolsCalled := make([]string, len(in.outcomes))
			for i, outcome := range in.outcomes {
				toolsCalled[i] = outcome.Tool
			}
			return contract.TurnResult{
				Response:           in.response,
				Intent:             in.intent,
				ToolsCalled:        toolsCalled,
				ToolResults:        in.outcomes,
				CustomerIdentified: in.conv.IsCustomerIdentified(),
				SessionSummary:     in.conv.Summary(),
			}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_turn: %w", err)
	}

	edges := [][2]string{
		{compose.START, "classify_intent"},
		{"classify_intent", "plan_tools"},
		{"plan_tools", "execute_tools"},
		{"execute_tools", "install_session"},
		{"install_session", "generate_response"},
		{"generate_response", "finalize_turn"},
		{"finalize_turn", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("agent.process_message"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}
