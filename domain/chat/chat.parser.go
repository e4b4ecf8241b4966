package chat

import (
	"nimbusBackend/utils"
	"strings"
)

var supportedActions = map[ChatAction]bool{
	ActionCreate:    true,
	ActionReboot:    true,
	ActionTerminate: true,
	ActionInfo:      true,
	ActionList:      true,
}

// Tokenize Splits a raw command line into tokens. Double-quoted sections are kept
// together and the quotes are stripped, so --tags="k1=v1,k2=v2" arrives as a
// single token.
func Tokenize(text string) []string {
	tokens := make([]string, 0)

	var builder strings.Builder
	inQuotes := false

	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if builder.Len() > 0 {
				tokens = append(tokens, builder.String())
				builder.Reset()
			}
		default:
			builder.WriteRune(r)
		}
	}

	if builder.Len() > 0 {
		tokens = append(tokens, builder.String())
	}

	return tokens
}

// ParseCommand Turns an action token and its arguments into an InstanceRequest.
// Arguments are --key=value options plus one trailing positional instance name.
// Unknown actions and a missing name fail before any provider call is made.
func ParseCommand(action string, args []string) (*InstanceRequest, error) {
	chatAction := ChatAction(action)
	if !supportedActions[chatAction] {
		return nil, utils.ErrorUnsupportedAction
	}

	request := &InstanceRequest{
		Action:     chatAction,
		Parameters: make(map[string]string),
	}

	for _, arg := range args {
		if option, found := strings.CutPrefix(arg, "--"); found {
			if key, value, hasValue := strings.Cut(option, "="); hasValue {
				request.Parameters[key] = value
			} else {
				// Bare flags like --puppet are treated as boolean switches
				request.Parameters[option] = "true"
			}
			continue
		}

		if request.Name == "" {
			request.Name = arg
		}
	}

	if request.Name == "" && chatAction != ActionList {
		return nil, utils.ErrorMissingArgument
	}

	return request, nil
}

// ParseTags Parses a "key1=val1,key2=val2" option value into a tag mapping.
func ParseTags(raw string) (map[string]string, error) {
	tags := make(map[string]string)
	if raw == "" {
		return tags, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(entry), "=")
		if !hasValue || key == "" {
			return nil, utils.ErrorValidationError
		}
		tags[key] = value
	}

	return tags, nil
}
