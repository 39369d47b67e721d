package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValTypeName(t *testing.T) {
	tests := []struct {
		name string
		in   ValType
		exp  string
	}{
		{name: "i32", in: ValTypeI32, exp: "i32"},
		{name: "i64", in: ValTypeI64, exp: "i64"},
		{name: "funcref", in: ValTypeFuncRef, exp: "funcref"},
		{name: "externref", in: ValTypeExternRef, exp: "externref"},
		{name: "unknown", in: 0x99, exp: "unknown(0x99)"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, ValTypeName(tc.in))
		})
	}
}

func TestIsRefType(t *testing.T) {
	require.True(t, IsRefType(ValTypeFuncRef))
	require.True(t, IsRefType(ValTypeExternRef))
	require.False(t, IsRefType(ValTypeI32))
	require.False(t, IsRefType(ValTypeI64))
}
