package chat

import (
	"context"
	"fmt"
	"nimbusBackend/auth"
	"nimbusBackend/cloud"
	"nimbusBackend/config"
	"nimbusBackend/domain/instance"
	"nimbusBackend/types"
	"nimbusBackend/utils"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

type (
	Service interface {
		// HandleCommand Parses a raw chat message and runs the requested instance
		// operation. Always returns a result suitable for posting back to the
		// channel, the error case included.
		HandleCommand(ctx context.Context, command CommandIn) CommandResult

		GetHistory(ctx context.Context, filter HistoryFilter) ([]ChatCommandOut, error)
	}

	chatService struct {
		config          *config.NimbusConfig
		chatRepo        Repository
		instanceService instance.Service
	}
)

func CreateService(
	config *config.NimbusConfig,
	chatRepo Repository,
	instanceService instance.Service,
) Service {
	return &chatService{
		config:          config,
		chatRepo:        chatRepo,
		instanceService: instanceService,
	}
}

func (s *chatService) HandleCommand(ctx context.Context, command CommandIn) CommandResult {
	text := strings.TrimSpace(command.Text)
	text = strings.TrimSpace(strings.TrimPrefix(text, s.config.Chat.CommandPrefix))

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return s.finishCommand(ctx, command, nil, "", utils.ErrorMissingArgument)
	}

	request, err := ParseCommand(tokens[0], tokens[1:])
	if err != nil {
		return s.finishCommand(ctx, command, nil, tokens[0], err)
	}

	message, err := s.dispatch(ctx, request)

	return s.finishCommand(ctx, command, request, tokens[0], err, message)
}

func (s *chatService) GetHistory(ctx context.Context, filter HistoryFilter) ([]ChatCommandOut, error) {
	commands, err := s.chatRepo.GetAll(ctx, &filter)
	if err != nil {
		return nil, err
	}

	return lo.Map(commands, func(command ChatCommand, _ int) ChatCommandOut {
		return toChatCommandOut(&command)
	}), nil
}

// dispatch Runs exactly one instance operation for a parsed request.
func (s *chatService) dispatch(ctx context.Context, request *InstanceRequest) (string, error) {
	actor := auth.AuthenticatedUser{UserId: auth.NativeUserID, IsAdmin: true}

	switch request.Action {
	case ActionCreate:
		payload, err := buildInstanceIn(request)
		if err != nil {
			return "", err
		}

		details, err := s.instanceService.Create(ctx, *payload, actor)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s: Created instance %s, state: %s.", request.Name, details.Id, details.State), nil
	case ActionReboot:
		if _, err := s.instanceService.Reboot(ctx, request.Name, actor); err != nil {
			return "", err
		}

		return fmt.Sprintf("%s: Successfully sent request to reboot.", request.Name), nil
	case ActionTerminate:
		if _, err := s.instanceService.Terminate(ctx, request.Name, actor); err != nil {
			return "", err
		}

		return fmt.Sprintf("%s: Successfully sent request to terminate.", request.Name), nil
	case ActionInfo:
		details, err := s.instanceService.Describe(ctx, request.Name)
		if err != nil {
			return "", err
		}

		return formatDetails(details), nil
	case ActionList:
		details, err := s.instanceService.List(ctx)
		if err != nil {
			return "", err
		}

		if len(details) == 0 {
			return "No instances found.", nil
		}

		lines := lo.Map(details, func(item cloud.InstanceDetails, _ int) string {
			return fmt.Sprintf("%s (%s): %s", item.Name, item.Id, item.State)
		})

		return strings.Join(lines, "\n"), nil
	}

	return "", utils.ErrorUnsupportedAction
}

// finishCommand Persists the audit record and shapes the channel response.
func (s *chatService) finishCommand(
	ctx context.Context, command CommandIn, request *InstanceRequest, action string, err error, message ...string,
) CommandResult {
	record := &ChatCommand{
		UUID:    utils.GenerateUuid(),
		Channel: command.Channel,
		Sender:  command.Sender,
		Action:  action,
	}
	if request != nil {
		record.InstanceName = request.Name
	}

	result := CommandResult{Success: err == nil}
	if err != nil {
		record.Severity = types.Error
		result.Message = err.Error()
	} else {
		record.Severity = types.Success
		result.Message = strings.Join(message, " ")
	}
	record.Response = result.Message

	if createErr := s.chatRepo.Create(ctx, record); createErr != nil {
		log.Warnf("Failed to persist chat command from %s: %s", command.Sender, createErr.Error())
	}

	return result
}

// buildInstanceIn Maps the chat option names onto an instance creation request.
// Unrecognized options are ignored so new chat clients can send extras without
// breaking older deployments.
func buildInstanceIn(request *InstanceRequest) (*instance.InstanceIn, error) {
	payload := &instance.InstanceIn{
		Name:         request.Name,
		Ami:          request.Parameters["ami"],
		InstanceType: request.Parameters["instance_type"],
		Keypair:      request.Parameters["keypair"],
		SubnetId:     request.Parameters["subnet_id"],
		UserData:     request.Parameters["user_data"],
		Profile:      request.Parameters["profile"],
		Ttl:          request.Parameters["ttl"],
	}

	if size, ok := request.Parameters["size"]; ok {
		volumeSize, err := strconv.Atoi(size)
		if err != nil || volumeSize <= 0 {
			return nil, utils.ErrorValidationError
		}
		payload.VolumeSize = volumeSize
	}

	if rawTags, ok := request.Parameters["tags"]; ok {
		tags, err := ParseTags(rawTags)
		if err != nil {
			return nil, err
		}
		payload.Tags = tags
	}

	return payload, nil
}

func formatDetails(details *cloud.InstanceDetails) string {
	fields := []string{
		fmt.Sprintf("%s (%s): %s", details.Name, details.Id, details.State),
		fmt.Sprintf("type: %s", details.InstanceType),
		fmt.Sprintf("keypair: %s", details.Keypair),
	}

	if len(details.PrivateIps) > 0 {
		fields = append(fields, fmt.Sprintf("private: %s", strings.Join(details.PrivateIps, ", ")))
	}
	if len(details.PublicIps) > 0 {
		fields = append(fields, fmt.Sprintf("public: %s", strings.Join(details.PublicIps, ", ")))
	}

	return strings.Join(fields, " | ")
}

func toChatCommandOut(command *ChatCommand) ChatCommandOut {
	return ChatCommandOut{
		ID:           command.UUID,
		Channel:      command.Channel,
		Sender:       command.Sender,
		Action:       command.Action,
		InstanceName: command.InstanceName,
		Response:     command.Response,
		Severity:     command.Severity,
	}
}
