package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		expectedError      bool
	}{
		{
			name:               "console_debug",
			requestedLogLevel:  utils.LogLevelDebug,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "structured_info",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "console_warn",
			requestedLogLevel:  utils.LogLevelWarn,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "structured_error",
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "unsupported_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatConsole,
			expectedError:      true,
		},
		{
			name:               "unsupported_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("logfmt"),
			expectedError:      true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()
			createdLogger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectedError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, createdLogger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, createdLogger)
		})
	}
}
