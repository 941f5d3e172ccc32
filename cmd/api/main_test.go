package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/cuvee/internal/repositories/catalogproduct"
	"github.com/Ramsey-B/cuvee/internal/repositories/matchresult"
	"github.com/Ramsey-B/cuvee/pkg/catalog"
	"github.com/Ramsey-B/cuvee/pkg/events"
	"github.com/Ramsey-B/cuvee/pkg/matching"
	"github.com/Ramsey-B/cuvee/pkg/processor"
)

func TestBuildContainer(t *testing.T) {
	container, err := buildContainer(
		&catalogproduct.Repository{},
		&matchresult.Repository{},
		&catalog.Service{},
		&matching.Service{},
		&processor.Processor{},
		&events.Emitter{},
	)
	require.NoError(t, err)
	require.NotNil(t, container)
}
