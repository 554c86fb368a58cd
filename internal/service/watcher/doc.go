// Package watcher polls the door server's timeout check on a fixed interval
// and logs every violation it sees.
package watcher
