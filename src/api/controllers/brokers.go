package controllers

import (
	"context"

	"famwealth/src/schemas"
)

type BrokersControllerI interface {
	GetLoginURL(ctx context.Context, broker string) (*schemas.LoginURLResponse, error)
	PostBrokerSession(ctx context.Context, userID, broker string, req *schemas.BrokerSessionRequest) (*schemas.BrokerSessionResponse, error)
	SyncBroker(ctx context.Context, userID, broker string, req *schemas.BrokerSyncRequest) (*schemas.BrokerSyncResponse, error)
}

func (c *Controller) GetLoginURL(_ context.Context, broker string) (*schemas.LoginURLResponse, error) {
	url, err := c.Brokers.LoginURL(broker)
	if err != nil {
		return nil, err
	}
	return &schemas.LoginURLResponse{Broker: broker, LoginURL: url}, nil
}

// PostBrokerSession logs in to the broker and keeps the session server side.
// The access token is never returned to the client.
func (c *Controller) PostBrokerSession(ctx context.Context, userID, broker string, req *schemas.BrokerSessionRequest) (*schemas.BrokerSessionResponse, error) {
	session, err := c.Brokers.CreateSession(ctx, userID, broker, *req)
	if err != nil {
		return nil, err
	}
	return &schemas.BrokerSessionResponse{Broker: session.Broker, ExpiresAt: session.ExpiresAt}, nil
}

func (c *Controller) SyncBroker(ctx context.Context, userID, broker string, req *schemas.BrokerSyncRequest) (*schemas.BrokerSyncResponse, error) {
	return c.Brokers.SyncBroker(ctx, userID, broker, *req)
}
