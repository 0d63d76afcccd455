package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeNilOK(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil, StatusOk))
}

func TestExitCodeNilStatusMapsToStatusBand(t *testing.T) {
	assert.Equal(t, 200+int(StatusRejected), ExitCode(nil, StatusRejected))
	assert.Equal(t, 200+int(StatusFailed), ExitCode(nil, StatusFailed))
}

func TestExitCodeTimeout(t *testing.T) {
	assert.Equal(t, 152, ExitCode(NewTimeoutError(), StatusOk))
}

func TestExitCodeProtocol(t *testing.T) {
	assert.Equal(t, 153, ExitCode(NewProtocolError("bad header"), StatusOk))
}

func TestExitCodeTransport(t *testing.T) {
	assert.Equal(t, 154, ExitCode(NewTransportError("write", nil), StatusOk))
}

func TestExitCodeParameterAndSyntaxMapToEINVAL(t *testing.T) {
	assert.Equal(t, 22, ExitCode(NewParameterError("bad tag"), StatusOk))
	assert.Equal(t, 22, ExitCode(NewSyntaxError("bad key length"), StatusOk))
}

func TestExitCodeUnknownErrorDefaultsToTransportBand(t *testing.T) {
	assert.Equal(t, 154, ExitCode(assert.AnError, StatusOk))
}

func TestStatusExitCode(t *testing.T) {
	assert.Equal(t, 200, StatusOk.ExitCode())
	assert.Equal(t, 200+int(StatusSessionDuplicate), StatusSessionDuplicate.ExitCode())
}
