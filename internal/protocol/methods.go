package protocol

import "strings"

// Method names understood by MCP servers.
// Requests expect a reply; methods under the notifications/ prefix do not.
const (
	MethodInitialize           = "initialize"
	MethodInitialized          = "initialized"
	MethodPing                 = "ping"
	MethodPong                 = "pong"
	MethodToolsList            = "tools/list"
	MethodToolsCall            = "tools/call"
	MethodResourcesList        = "resources/list"
	MethodResourcesRead        = "resources/read"
	MethodResourcesSubscribe   = "resources/subscribe"
	MethodResourcesUnsubscribe = "resources/unsubscribe"
	MethodPromptsList          = "prompts/list"
	MethodPromptsGet           = "prompts/get"
	MethodSamplesList          = "samples/list"
	MethodSamplesGet           = "samples/get"
	MethodLoggingSetLevel      = "logging/setLevel"

	NotificationToolsListChanged     = "notifications/tools/list_changed"
	NotificationResourcesListChanged = "notifications/resources/list_changed"
	NotificationPromptsListChanged   = "notifications/prompts/list_changed"
)

// notificationPrefix marks methods that never expect a reply.
const notificationPrefix = "notifications/"

var methodCatalog = map[string]struct{}{
	MethodInitialize:                 {},
	MethodInitialized:                {},
	MethodPing:                       {},
	MethodPong:                       {},
	MethodToolsList:                  {},
	MethodToolsCall:                  {},
	MethodResourcesList:              {},
	MethodResourcesRead:              {},
	MethodResourcesSubscribe:         {},
	MethodResourcesUnsubscribe:       {},
	MethodPromptsList:                {},
	MethodPromptsGet:                 {},
	MethodSamplesList:                {},
	MethodSamplesGet:                 {},
	MethodLoggingSetLevel:            {},
	NotificationToolsListChanged:     {},
	NotificationResourcesListChanged: {},
	NotificationPromptsListChanged:   {},
}

// IsKnownMethod reports whether the given method is part of the fixed catalog.
func IsKnownMethod(method string) bool {
	_, ok := methodCatalog[method]
	return ok
}

// IsNotification reports whether the given method is a notification,
// i.e. a one-way message that never expects a reply.
func IsNotification(method string) bool {
	return strings.HasPrefix(method, notificationPrefix)
}
