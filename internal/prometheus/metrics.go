package prometheus

import (
	promclient "github.com/prometheus/client_golang/prometheus"
)

// Business-level metrics for the tracker
// These track actual business operations, not just HTTP requests

var (
	// ═══════════════════════════════════════════════════════════════════════════
	// USER METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// UsersCreatedTotal - Counter of users signed up, labeled by role
	UsersCreatedTotal = promclient.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_users_created_total",
			Help: "Total number of users signed up",
		},
		[]string{"role"},
	)

	// UsersDeletedTotal - Counter of users deleted
	UsersDeletedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_users_deleted_total",
			Help: "Total number of users deleted",
		},
	)

	// UsersUpdatedTotal - Counter of user updates
	UsersUpdatedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_users_updated_total",
			Help: "Total number of user updates",
		},
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// PROJECT METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// ProjectsCreatedTotal - Counter of projects created
	ProjectsCreatedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_projects_created_total",
			Help: "Total number of projects created",
		},
	)

	// ProjectsDeletedTotal - Counter of projects deleted
	ProjectsDeletedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_projects_deleted_total",
			Help: "Total number of projects deleted",
		},
	)

	// ClientsAddedTotal - Counter of addClientToProject calls that succeeded
	ClientsAddedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_clients_added_total",
			Help: "Total number of clients added to projects",
		},
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// TASK METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// TasksCreatedTotal - Counter of tasks created, labeled by initial status
	TasksCreatedTotal = promclient.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_tasks_created_total",
			Help: "Total number of tasks created",
		},
		[]string{"status"},
	)

	// TasksDeletedTotal - Counter of tasks deleted
	TasksDeletedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_tasks_deleted_total",
			Help: "Total number of tasks deleted",
		},
	)

	// CommentsTotal - Counter of comment changes
	CommentsTotal = promclient.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_comments_changed_total",
			Help: "Total number of comments created or deleted",
		},
		[]string{"action"}, // "create" or "delete"
	)

	// HoursLoggedTotal - Counter of hours logged across all tasks
	HoursLoggedTotal = promclient.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_hours_logged_total",
			Help: "Total number of hours logged",
		},
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// ENTITY GAUGES
	// ═══════════════════════════════════════════════════════════════════════════

	// EntitiesTotal - Gauge of current row counts per entity
	EntitiesTotal = promclient.NewGaugeVec(
		promclient.GaugeOpts{
			Name: "tracker_entities_total",
			Help: "Current number of stored entities",
		},
		[]string{"entity"}, // "user", "project", "task", "comment", "logged_time"
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// OPERATION DURATION METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// OperationDuration - Histogram of store operation durations
	OperationDuration = promclient.NewHistogramVec(
		promclient.HistogramOpts{
			Name:    "tracker_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: promclient.DefBuckets,
		},
		[]string{"operation", "success"},
	)

	// OperationsTotal - Counter of all store operations
	OperationsTotal = promclient.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "success"},
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// AUTHENTICATION METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// AuthAttemptsTotal - Counter of login attempts
	AuthAttemptsTotal = promclient.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"success"},
	)

	// AuthDuration - Histogram of login duration. bcrypt dominates this.
	AuthDuration = promclient.NewHistogram(
		promclient.HistogramOpts{
			Name:    "tracker_auth_duration_seconds",
			Help:    "Duration of login attempts in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// ═══════════════════════════════════════════════════════════════════════════
	// CONNECTION POOL METRICS
	// ═══════════════════════════════════════════════════════════════════════════

	// PoolOpenConnections - Gauge of open database connections
	PoolOpenConnections = promclient.NewGauge(
		promclient.GaugeOpts{
			Name: "tracker_db_open_connections",
			Help: "Number of open database connections",
		},
	)

	// PoolInUseConnections - Gauge of in-use database connections
	PoolInUseConnections = promclient.NewGauge(
		promclient.GaugeOpts{
			Name: "tracker_db_in_use_connections",
			Help: "Number of database connections currently in use",
		},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	promclient.MustRegister(
		UsersCreatedTotal,
		UsersDeletedTotal,
		UsersUpdatedTotal,
		ProjectsCreatedTotal,
		ProjectsDeletedTotal,
		ClientsAddedTotal,
		TasksCreatedTotal,
		TasksDeletedTotal,
		CommentsTotal,
		HoursLoggedTotal,
		EntitiesTotal,
		OperationDuration,
		OperationsTotal,
		AuthAttemptsTotal,
		AuthDuration,
		PoolOpenConnections,
		PoolInUseConnections,
	)
}
