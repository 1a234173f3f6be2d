// Package constants provides shared constants for the capital-simulator application.
package constants

import "time"

// Currency constants
const (
	// CurrencyPrefix is prepended to every formatted capital amount
	CurrencyPrefix = "R$ "

	// DecimalSeparator separates the integer part from the cents
	DecimalSeparator = ','

	// ThousandsSeparator groups the integer part every three digits
	ThousandsSeparator = '.'

	// MinorUnitsPerUnit is the number of cents in one real
	MinorUnitsPerUnit = 100

	// MaxInputDigits is the number of digits kept from the capital field
	MaxInputDigits = 8

	// MaxMinorUnits is the largest capital accepted, in cents (R$ 100.000,00)
	MaxMinorUnits int64 = 10_000_000
)

// Optimizer constants
const (
	// DefaultEndpoint is the optimization API the simulator talks to
	DefaultEndpoint = "http://127.0.0.1:5000/api/optimize"

	// RequestIDHeader carries the correlation id of every optimizer call
	RequestIDHeader = "X-Request-ID"
)

// Output format constants
const (
	// OutputFormatText prints the alert message only
	OutputFormatText = "text"

	// OutputFormatJSON prints the outcome as a JSON document
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "simulator.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web form
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultServerReadTimeout bounds how long a client may take to send a request
	DefaultServerReadTimeout = 10 * time.Second
)

// User-facing messages
const (
	MessageInvalidCapital   = "Por favor, insira um capital válido."
	MessageConnectionFailed = "Erro ao conectar com o servidor."
	MessageSimulationDone   = "Simulação realizada!"
	MessageSimulationFailed = "Erro ao realizar a simulação."
)
