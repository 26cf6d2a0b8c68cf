package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
)

const (
	defaultRegion      = "us-east-1"
	defaultSessionName = "UniSummarizeSession"
)

// converser is the subset of the runtime client used here.
type converser interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type client struct {
	clientPool *sync.Map
	build      func(ctx context.Context, credentials providers.Credentials) (converser, error)
}

func NewBedrockClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
		build:      buildRuntimeClient,
	}
}

func (c *client) Summarize(ctx context.Context, config *providers.Config, text string) (*providers.Summary, error) {
	if config.Model == "" {
		return nil, errors.New("model is required")
	}
	req, err := providers.NewRequest(config, text)
	if err != nil {
		return nil, err
	}

	runtime, err := c.getOrCreateClient(ctx, config.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	inference := &types.InferenceConfiguration{MaxTokens: aws.Int32(int32(req.MaxTokens))}
	if req.Temperature > 0 {
		inference.Temperature = aws.Float32(float32(req.Temperature))
	}
	out, err := runtime.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(config.Model),
		System:  []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: req.System}},
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: req.User}},
		}},
		InferenceConfig: inference,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock converse: %w", err)
	}
	if out.StopReason == types.StopReasonGuardrailIntervened || out.StopReason == types.StopReasonContentFiltered {
		return nil, fmt.Errorf("bedrock stopped the summary: %s", out.StopReason)
	}

	responseText, err := extractText(out)
	if err != nil {
		return nil, err
	}
	summary, err := providers.CleanSummary(responseText)
	if err != nil {
		return nil, err
	}

	resp := &providers.Summary{
		ID:    fmt.Sprintf("bedrock-%d", time.Now().UnixNano()),
		Model: config.Model,
		Text:  summary,
	}
	if out.Usage != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

func extractText(out *bedrockruntime.ConverseOutput) (string, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected converse output %T", out.Output)
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	if b.Len() == 0 {
		return "", providers.ErrEmptySummary
	}
	return b.String(), nil
}

func (c *client) getOrCreateClient(ctx context.Context, credentials providers.Credentials) (converser, error) {
	key := buildClientKey(credentials)
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(converser); ok {
			return cli, nil
		}
	}
	cli, err := c.build(ctx, credentials)
	if err != nil {
		return nil, err
	}
	actual, _ := c.clientPool.LoadOrStore(key, cli)
	return actual.(converser), nil
}

func buildClientKey(credentials providers.Credentials) string {
	if credentials.AwsBedrock == nil {
		return "default"
	}
	return fmt.Sprintf("%s:%s:%v:%s",
		credentials.AwsBedrock.AccessKey,
		credentials.AwsBedrock.Region,
		credentials.AwsBedrock.UseRole,
		credentials.AwsBedrock.RoleARN,
	)
}

func buildRuntimeClient(ctx context.Context, credentials providers.Credentials) (converser, error) {
	cfg, err := buildAwsConfig(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// buildAwsConfig falls back to the default AWS credential chain when no
// static keys are configured.
func buildAwsConfig(ctx context.Context, credentials providers.Credentials) (aws.Config, error) {
	creds := credentials.AwsBedrock
	if creds == nil {
		return config.LoadDefaultConfig(ctx, config.WithRegion(defaultRegion))
	}

	region := creds.Region
	if region == "" {
		region = defaultRegion
	}

	if creds.UseRole && creds.RoleARN != "" {
		assumed, err := assumeRole(ctx, creds.AccessKey, creds.SecretKey, creds.RoleARN, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, *assumed.AccessKeyId, *assumed.SecretAccessKey, *assumed.SessionToken, region)
	}
	if creds.AccessKey == "" {
		return config.LoadDefaultConfig(ctx, config.WithRegion(region))
	}
	return loadAWSConfig(ctx, creds.AccessKey, creds.SecretKey, creds.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		config.WithRegion(region),
	)
}

func assumeRole(ctx context.Context, accessKey, secretKey, roleARN, region string) (*stsTypes.Credentials, error) {
	var (
		baseCfg aws.Config
		err     error
	)
	if accessKey == "" {
		baseCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(region))
	} else {
		baseCfg, err = loadAWSConfig(ctx, accessKey, secretKey, "", region)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}

	output, err := sts.NewFromConfig(baseCfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}
