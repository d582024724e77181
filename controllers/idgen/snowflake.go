// Package idgen hands out snowflake record ids so inserts never collide
// across tables or restarts.
package idgen

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

// The tracker runs as a single instance, so one fixed node is enough.
const nodeNumber = 1

var node *snowflake.Node

// Init builds the generator node. Must run before the first insert; the
// model BeforeCreate hooks assume it.
func Init() {
	n, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		log.Fatalf("snowflake node %d init: %v", nodeNumber, err)
	}
	node = n
}

func GenerateID() int64 {
	return node.Generate().Int64()
}
