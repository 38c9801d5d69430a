// Package timeouts defines shared timeout constants for blogger processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Read limits how long the HTTP server spends reading a full request.
const Read = 15 * time.Second

// Write limits how long a handler may take to write its response.
const Write = 15 * time.Second

// Idle caps keep-alive connections between requests.
const Idle = 60 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOpen caps connecting to and migrating the post store at startup.
const StoreOpen = 10 * time.Second

// HealthProbe caps a single store ping issued by the health endpoint.
const HealthProbe = 2 * time.Second
