package mocks

import (
	"context"

	"github.com/onenetwo/billing-services/callbackprocessor/pkg/netcontrol"
	"github.com/stretchr/testify/mock"
)

type DeviceClient struct {
	mock.Mock
}

func (m *DeviceClient) EnableSubscriber(ctx context.Context, routerIP string, username string) netcontrol.Outcome {
	args := m.Called(ctx, routerIP, username)
	return args.Get(0).(netcontrol.Outcome)
}
