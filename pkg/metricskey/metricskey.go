package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsToolCallsSucceeded is base for counter metric for total tool calls succeeded
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsInvalidArgs = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_invalid_args",
		Help:         "stats_tool_calls_invalid_args provides total tool calls rejected before dispatch",
		RequiredTags: []string{"tool"},
	}

	StatsRegistrarRequestsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_registrar_requests_succeeded",
		Help:         "stats_registrar_requests_succeeded provides total registrar API requests succeeded",
		RequiredTags: []string{"operation"},
	}

	StatsRegistrarRequestsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_registrar_requests_failed",
		Help:         "stats_registrar_requests_failed provides total registrar API requests failed",
		RequiredTags: []string{"operation"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfRegistrarRequest = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_registrar_request",
		Help:         "perf_registrar_request provides duration of registrar API request",
		RequiredTags: []string{"operation"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfRegistrarRequest,
	&PerfToolCall,
	&StatsRegistrarRequestsFailed,
	&StatsRegistrarRequestsSucceeded,
	&StatsToolCallsFailed,
	&StatsToolCallsInvalidArgs,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
