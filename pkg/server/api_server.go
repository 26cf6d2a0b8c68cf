package server

import (
	"github.com/NeuralTrust/UniSummarize/pkg/config"
	handlers "github.com/NeuralTrust/UniSummarize/pkg/handlers/http"
	"github.com/NeuralTrust/UniSummarize/pkg/middleware"
	"github.com/NeuralTrust/UniSummarize/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		Config              *config.Config
		Logger              *logrus.Logger
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
	}
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) (*APIServer, error) {
	base := NewBaseServer(di.Config, di.Logger)
	if err := router.NewAPIRouter(di.MiddlewareTransport, di.HandlerTransport).BuildRoutes(base.Router); err != nil {
		return nil, err
	}
	return &APIServer{BaseServer: base}, nil
}

func (s *APIServer) Run() error {
	s.setupMetricsEndpoint()

	addr := s.Config.Addr()
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}
