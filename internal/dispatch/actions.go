package dispatch

import (
	"fmt"

	"github.com/agentry/mcplink/internal/errors"
	"github.com/agentry/mcplink/internal/protocol"
)

// Action names accepted by Execute.
const (
	ActionInitialize          = "initialize"
	ActionPing                = "ping"
	ActionListTools           = "list_tools"
	ActionCallTool            = "call"
	ActionListResources       = "list_resources"
	ActionReadResource        = "read_resource"
	ActionSubscribeResource   = "subscribe_resource"
	ActionUnsubscribeResource = "unsubscribe_resource"
	ActionListPrompts         = "list_prompts"
	ActionGetPrompt           = "get_prompt"
	ActionListSamples         = "list_samples"
	ActionGetSample           = "get_sample"
	ActionSetLogLevel         = "set_log_level"
)

// actionSpec binds one action to its protocol method and the function that
// shapes caller-supplied params into the method's parameter object.
type actionSpec struct {
	method string
	shape  func(params map[string]any) (any, error)
}

// actionTable returns the fixed action to method mapping. Every entry is
// validated against the method catalog when the dispatcher is constructed.
func actionTable() map[string]actionSpec {
	return map[string]actionSpec{
		ActionInitialize:          {method: protocol.MethodInitialize, shape: shapePassthrough},
		ActionPing:                {method: protocol.MethodPing, shape: shapeEmpty},
		ActionListTools:           {method: protocol.MethodToolsList, shape: shapeEmpty},
		ActionCallTool:            {method: protocol.MethodToolsCall, shape: shapeRequire("name")},
		ActionListResources:       {method: protocol.MethodResourcesList, shape: shapeEmpty},
		ActionReadResource:        {method: protocol.MethodResourcesRead, shape: shapeRequire("uri")},
		ActionSubscribeResource:   {method: protocol.MethodResourcesSubscribe, shape: shapeRequire("uri")},
		ActionUnsubscribeResource: {method: protocol.MethodResourcesUnsubscribe, shape: shapeRequire("uri")},
		ActionListPrompts:         {method: protocol.MethodPromptsList, shape: shapeEmpty},
		ActionGetPrompt:           {method: protocol.MethodPromptsGet, shape: shapeRequire("name")},
		ActionListSamples:         {method: protocol.MethodSamplesList, shape: shapeEmpty},
		ActionGetSample:           {method: protocol.MethodSamplesGet, shape: shapeRequire("name")},
		ActionSetLogLevel:         {method: protocol.MethodLoggingSetLevel, shape: shapeRequire("level")},
	}
}

// shapeEmpty drops caller params; the method takes none.
func shapeEmpty(_ map[string]any) (any, error) {
	return nil, nil
}

// shapePassthrough forwards caller params unchanged.
func shapePassthrough(params map[string]any) (any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	return params, nil
}

// shapeRequire forwards caller params after checking required keys.
// A missing key fails with the canonical invalid-params execution error
// before any transport call is made.
func shapeRequire(keys ...string) func(map[string]any) (any, error) {
	return func(params map[string]any) (any, error) {
		for _, k := range keys {
			if _, ok := params[k]; !ok {
				return nil, errors.NewExecution(
					protocol.CodeInvalidParams,
					protocol.MessageFor(protocol.CodeInvalidParams),
					fmt.Sprintf("missing required parameter '%s'", k),
				)
			}
		}
		return params, nil
	}
}
