package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/logging"
)

// globalRegion é usada pelos serviços globais (IAM, STS) quando nenhuma região foi configurada.
const globalRegion = "us-east-1"

// Session carrega a configuração AWS uma única vez e mantém cache de clientes.
type Session struct {
	profile string
	region  string
	logger  logging.Logger

	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// SessionOption customiza a Session.
type SessionOption func(*Session)

// WithProfile seleciona um perfil do shared config (~/.aws/config).
func WithProfile(profile string) SessionOption {
	return func(s *Session) { s.profile = profile }
}

// WithRegion sobrescreve a região da configuração.
func WithRegion(region string) SessionOption {
	return func(s *Session) { s.region = region }
}

// WithLogger liga o log de requisições e retries do SDK.
func WithLogger(logger logging.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession cria uma Session; nada é carregado até o primeiro cliente ser pedido.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{clientCache: make(map[string]interface{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) getAWSConfig(ctx context.Context) (aws.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg != nil {
		return *s.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if s.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.profile))
	}
	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}
	if s.logger != nil {
		opts = append(opts,
			config.WithLogger(s.logger),
			config.WithClientLogMode(aws.LogRetries|aws.LogRequest),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		if s.profile != "" {
			return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", s.profile, err)
		}
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s.cfg = &cfg
	return cfg, nil
}

func (s *Session) getServiceClient(ctx context.Context, service string) (interface{}, error) {
	s.mu.Lock()
	if client, ok := s.clientCache[service]; ok {
		s.mu.Unlock()
		return client, nil
	}
	s.mu.Unlock()

	cfg, err := s.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	serviceCfg := cfg.Copy()

	var client interface{}
	switch service {
	case "iam":
		if serviceCfg.Region == "" {
			serviceCfg.Region = globalRegion
		}
		client = iam.NewFromConfig(serviceCfg)
	case "sts":
		if serviceCfg.Region == "" {
			serviceCfg.Region = globalRegion
		}
		client = sts.NewFromConfig(serviceCfg)
	case "s3":
		client = s3.NewFromConfig(serviceCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	s.mu.Lock()
	s.clientCache[service] = client
	s.mu.Unlock()

	return client, nil
}
