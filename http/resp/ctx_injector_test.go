package resp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch"
)

func TestDefaultInjector(t *testing.T) {
	// Arrange
	withVal := context.WithValue(context.Background(), dispatch.RequestIDKey, "abc")
	tcs := []struct {
		name     string
		keys     []dispatch.Key
		props    map[string]any
		ctx      context.Context
		expected map[string]any
	}{
		{"both-nil", nil, nil, nil, nil},
		{"ctx-nil", nil, make(map[string]any), nil, make(map[string]any)},
		{"keys-nil", nil, make(map[string]any), withVal, make(map[string]any)},
		{"no-values", []dispatch.Key{dispatch.IpAddrKey}, make(map[string]any), withVal, make(map[string]any)},
		{
			"props-has-values",
			[]dispatch.Key{dispatch.IpAddrKey},
			map[string]any{"test": 1},
			withVal,
			map[string]any{"test": 1},
		},
		{
			"injected",
			[]dispatch.Key{dispatch.RequestIDKey, dispatch.IpAddrKey},
			map[string]any{"test": 1},
			withVal,
			map[string]any{"test": 1, "RequestIDKey": "abc"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			DefaultInjector{Keys: tc.keys}.Inject(tc.props, tc.ctx)

			// Assert
			require.Equal(t, tc.expected, tc.props)
		})
	}
}

func TestNoopInjector(t *testing.T) {
	// Arrange
	props := map[string]any{}
	ctx := context.WithValue(context.Background(), dispatch.RequestIDKey, "abc")

	// Act
	NoopInjector{}.Inject(props, ctx)

	// Assert
	require.Empty(t, props)
}
