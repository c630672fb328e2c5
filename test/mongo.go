// Package test provides helpers to run the external services the backend
// depends on inside containers during tests.
package test

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.vocdoni.io/dvote/util"
)

const (
	// MongoPort is the port exposed by the MongoDB test container.
	MongoPort = 27017
	// MongoImage is the MongoDB image used for tests.
	MongoImage = "mongo:7"
)

// StartMongoContainer starts a MongoDB container for testing. The caller is
// responsible for terminating it.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	exposedPort := fmt.Sprintf("%d/tcp", MongoPort)

	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        MongoImage,
				ExposedPorts: []string{exposedPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(nat.Port(exposedPort)),
				),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a random database name, so concurrent test
// packages sharing a container never collide.
func RandomDatabaseName() string {
	return "test_" + util.RandomHex(8)
}
