package service

import (
	"context"
	"encoding/json"
	"testing"

	"photopro-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	state := newFakeState()
	svc := NewProjectService(&fakeUowFactory{state: state})
	userId := uuid.New()

	blob := json.RawMessage(`{"layers":[{"id":1,"filter":"sepia"}]}`)
	saved, err := svc.SaveProject(context.Background(), userId, &dto.SaveProjectRequest{
		Name:        "Sunset edit",
		ProjectData: blob,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunset edit", saved.Name)
	// The blob round-trips untouched
	assert.JSONEq(t, string(blob), string(saved.ProjectData))

	got, err := svc.GetProject(context.Background(), userId, saved.Id)
	require.NoError(t, err)
	assert.Equal(t, saved.Id, got.Id)

	updatedBlob := json.RawMessage(`{"layers":[]}`)
	updated, err := svc.UpdateProject(context.Background(), userId, saved.Id, &dto.SaveProjectRequest{
		Name:        "Sunset edit v2",
		ProjectData: updatedBlob,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunset edit v2", updated.Name)
	assert.True(t, !updated.LastModified.Before(saved.LastModified))

	list, err := svc.ListProjects(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteProject(context.Background(), userId, saved.Id))

	list, err = svc.ListProjects(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectOwnershipEnforced(t *testing.T) {
	state := newFakeState()
	svc := NewProjectService(&fakeUowFactory{state: state})

	owner := uuid.New()
	intruder := uuid.New()

	saved, err := svc.SaveProject(context.Background(), owner, &dto.SaveProjectRequest{
		Name:        "Private",
		ProjectData: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	_, err = svc.GetProject(context.Background(), intruder, saved.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.UpdateProject(context.Background(), intruder, saved.Id, &dto.SaveProjectRequest{
		Name:        "Hijacked",
		ProjectData: json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	err = svc.DeleteProject(context.Background(), intruder, saved.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	// Still intact for the owner
	got, err := svc.GetProject(context.Background(), owner, saved.Id)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Name)
}
