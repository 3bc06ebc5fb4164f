// Command cgrctl calls the billing engine's JSON-RPC API from the shell.
//
//	cgrctl -url http://127.0.0.1:2080/jsonrpc get-account '{"Tenant":"cgrates.org","Account":"1001"}'
//	cgrctl -etcd 127.0.0.1:2379 -id auto debit-balance '{"Tenant":"cgrates.org","Account":"1001","BalanceId":"b1","Value":1}'
//	cgrctl fake-engine -listen 127.0.0.1:2080
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
