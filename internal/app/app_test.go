package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateApp(t *testing.T) {
	tests := map[string]struct {
		cfg   *Config
		error string
	}{
		"missing everything": {
			cfg:   &Config{},
			error: "service name is required\nstop timeout is required",
		},
		"valid": {
			cfg: &Config{ServiceName: "tessera", StopTimeout: time.Second},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := CreateApp(tc.cfg)
			if tc.error != "" {
				req.EqualError(err, tc.error)
				req.Nil(got)
				return
			}
			req.NoError(err)
			req.NotNil(got)
		})
	}
}

func newDependency(ctrl *gomock.Controller, name string, started chan<- string, startErr error) *MockDependency {
	dep := NewMockDependency(ctrl)
	dep.EXPECT().Name().Return(name).AnyTimes()
	dep.EXPECT().Start().DoAndReturn(func() error {
		started <- name
		return startErr
	})
	return dep
}

func TestApp_Run_StopsInReverseOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	started := make(chan string, 2)

	first := newDependency(ctrl, "first", started, nil)
	second := newDependency(ctrl, "second", started, nil)
	gomock.InOrder(
		second.EXPECT().Stop().Return(nil),
		first.EXPECT().Stop().Return(nil),
	)

	a, err := CreateApp(&Config{ServiceName: "tessera", StopTimeout: time.Second}, first, second)
	req.NoError(err)

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		<-started
		<-started
		cancel()
	}()

	req.NoError(a.Run(ctx))
	req.EqualError(a.Run(ctx), "run has already been called")
}

func TestApp_Run_DependencyFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	started := make(chan string, 1)

	failing := newDependency(ctrl, "failing", started, errors.New("bind error"))
	failing.EXPECT().Stop().Return(errors.New("not running"))

	a, err := CreateApp(&Config{ServiceName: "tessera", StopTimeout: time.Second}, failing)
	req.NoError(err)

	err = a.Run(t.Context())
	req.Error(err)
	req.Contains(err.Error(), "failure in Start() for dependency failing: bind error")
	req.Contains(err.Error(), "failure in Stop() for dependency failing: not running")
}

func TestApp_Stop_Timeout(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	slow := NewMockDependency(ctrl)
	slow.EXPECT().Name().Return("slow").AnyTimes()
	slow.EXPECT().Stop().DoAndReturn(func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	a, err := CreateApp(&Config{ServiceName: "tessera", StopTimeout: 20 * time.Millisecond}, slow)
	req.NoError(err)

	err = a.stop()
	req.ErrorIs(err, context.DeadlineExceeded)
	req.EqualError(a.stop(), "stop has already been called")

	// let the slow Stop finish before the controller checks its calls
	time.Sleep(250 * time.Millisecond)
}
