package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Operations counts facade calls by operation and outcome status.
	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "objectstore",
		Name:      "operations_total",
		Help:      "Facade operations by name and result status.",
	}, []string{"op", "status"})

	// TransferBytes counts bytes moved by the transfer manager.
	TransferBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "objectstore",
		Name:      "transfer_bytes_total",
		Help:      "Bytes uploaded or downloaded through the transfer manager.",
	}, []string{"direction"})

	// ObjectsDeleted counts objects removed by directory removal.
	ObjectsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "objectstore",
		Name:      "directory_objects_deleted_total",
		Help:      "Objects deleted while removing directories.",
	})
)

var once sync.Once

// Init registers collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(Operations, TransferBytes, ObjectsDeleted)
	})
}
