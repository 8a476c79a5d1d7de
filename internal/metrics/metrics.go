// Package metrics exposes Prometheus collectors for the ledger node.
package metrics

const namespace = "bsq"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
