package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"path/filepath"
	"pipe-tools/models"
	"testing"
)

type versionFixture struct {
	ctx    *Context
	worker *models.Worker
	shot   Parent
}

func newVersionFixture(t *testing.T) *versionFixture {
	t.Helper()

	ctx := testContext(t)
	session := adminSession(t, ctx)

	_, err := ctx.CreateProject("ProjectA", "", "")
	require.NoError(t, err)
	_, err = ctx.CreateSequence("ProjectA", "SEQ010", "")
	require.NoError(t, err)
	_, err = ctx.CreateShot("ProjectA", "SEQ010", "SH010", "")
	require.NoError(t, err)

	shot, err := ctx.ResolveParent("ProjectA", "SEQ010", "SH010")
	require.NoError(t, err)

	return &versionFixture{ctx: ctx, worker: session.Worker, shot: shot}
}

func (f *versionFixture) create(t *testing.T, number uint) *models.Version {
	t.Helper()

	version, err := f.ctx.CreateVersion(f.shot, NewVersion{VersionNumber: number, WorkerID: f.worker.ID})
	require.NoError(t, err)

	return version
}

func TestNextVersionNumberDoesNotFillGaps(t *testing.T) {
	f := newVersionFixture(t)

	next, err := f.ctx.NextVersionNumber(f.shot)
	require.NoError(t, err)
	assert.Equal(t, uint(1), next)

	f.create(t, 1)
	f.create(t, 2)
	f.create(t, 4)

	next, err = f.ctx.NextVersionNumber(f.shot)
	require.NoError(t, err)
	assert.Equal(t, uint(5), next)
}

func TestCreateVersionMovesTheLatestFlag(t *testing.T) {
	f := newVersionFixture(t)

	first := f.create(t, 0)
	assert.Equal(t, uint(1), first.VersionNumber)
	assert.True(t, first.IsLatest)

	second := f.create(t, 0)
	assert.Equal(t, uint(2), second.VersionNumber)
	assert.True(t, second.IsLatest)

	versions, err := f.ctx.ListVersions(f.shot)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.False(t, versions[0].IsLatest)
	assert.True(t, versions[1].IsLatest)
	require.NotNil(t, versions[1].Worker)
	assert.Equal(t, "supervisor", versions[1].Worker.Name)
}

func TestCreateVersionBelowTheLatestKeepsTheFlag(t *testing.T) {
	f := newVersionFixture(t)
	f.create(t, 3)

	older := f.create(t, 2)
	assert.False(t, older.IsLatest)

	latest, err := f.ctx.LatestVersion(f.shot)
	require.NoError(t, err)
	assert.Equal(t, uint(3), latest.VersionNumber)
}

func TestCreateVersionRejectsDuplicatesAndUnknownParents(t *testing.T) {
	f := newVersionFixture(t)
	f.create(t, 1)

	_, err := f.ctx.CreateVersion(f.shot, NewVersion{VersionNumber: 1, WorkerID: f.worker.ID})
	assert.ErrorIs(t, err, ErrVersionExists)

	_, err = f.ctx.CreateVersion(Parent{Kind: ParentShot, ID: 999}, NewVersion{WorkerID: f.worker.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.ctx.CreateVersion(f.shot, NewVersion{WorkerID: 999})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.ctx.CreateVersion(Parent{Kind: ParentKind(42), ID: 1}, NewVersion{WorkerID: f.worker.ID})
	assert.ErrorIs(t, err, ErrUnknownParentKind)
}

func TestInsertVersionRejectsVersionZero(t *testing.T) {
	f := newVersionFixture(t)

	err := f.ctx.DB.Transaction(func(tx *gorm.DB) error {
		return insertVersion(tx, f.shot, &models.Version{VersionNumber: 0, WorkerID: f.worker.ID})
	})
	assert.ErrorIs(t, err, ErrInvalidVersionNumber)
	assert.Zero(t, countRows(t, f.ctx, &models.Version{}))
}

func TestVersionNumbersAreCountedPerParent(t *testing.T) {
	f := newVersionFixture(t)
	f.create(t, 7)

	sequence, err := f.ctx.ResolveParent("ProjectA", "SEQ010", "")
	require.NoError(t, err)

	next, err := f.ctx.NextVersionNumber(sequence)
	require.NoError(t, err)
	assert.Equal(t, uint(1), next)

	version, err := f.ctx.CreateVersion(sequence, NewVersion{WorkerID: f.worker.ID})
	require.NoError(t, err)
	assert.True(t, version.IsLatest)
	assert.Equal(t, models.VersionTypeSequence, version.VersionType)
	assert.Nil(t, version.ShotID)
	require.NotNil(t, version.SequenceID)
	assert.Equal(t, sequence.ID, *version.SequenceID)

	latest, err := f.ctx.LatestVersion(f.shot)
	require.NoError(t, err)
	assert.Equal(t, uint(7), latest.VersionNumber)
}

func TestCreateVersionFillsDefaultPathsFromSettings(t *testing.T) {
	f := newVersionFixture(t)
	renderRoot := filepath.Join(t.TempDir(), "renders")
	previewRoot := filepath.Join(t.TempDir(), "previews")

	require.NoError(t, f.ctx.SetSetting(SettingRenderRoot, renderRoot))
	require.NoError(t, f.ctx.SetSetting(SettingPreviewOutput, previewRoot))

	version := f.create(t, 0)
	assert.Equal(t, filepath.Join(renderRoot, "ProjectA", "SEQ010", "SH010", "v001"), version.RenderPath)
	assert.Equal(t, filepath.Join(previewRoot, "ProjectA", "SEQ010", "SH010", "v001"), version.PreviewPath)

	renderOutputRoot := filepath.Join(t.TempDir(), "output")
	require.NoError(t, f.ctx.SetSetting(SettingRenderOutput, renderOutputRoot))

	version, err := f.ctx.CreateVersion(f.shot, NewVersion{WorkerID: f.worker.ID, PreviewPath: "/review/sh010.mov"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(renderOutputRoot, "ProjectA", "SEQ010", "SH010", "v002"), version.RenderPath)
	assert.Equal(t, "/review/sh010.mov", version.PreviewPath)
}

func TestCreateVersionLeavesPathsEmptyWithoutSettings(t *testing.T) {
	f := newVersionFixture(t)

	version := f.create(t, 0)
	assert.Empty(t, version.RenderPath)
	assert.Empty(t, version.PreviewPath)
}

func TestDeleteVersionPromotesTheNextHighest(t *testing.T) {
	f := newVersionFixture(t)
	f.create(t, 1)
	second := f.create(t, 2)
	third := f.create(t, 3)

	require.NoError(t, f.ctx.DeleteVersion(third.ID))

	latest, err := f.ctx.LatestVersion(f.shot)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	next, err := f.ctx.NextVersionNumber(f.shot)
	require.NoError(t, err)
	assert.Equal(t, uint(3), next)

	assert.ErrorIs(t, f.ctx.DeleteVersion(third.ID), ErrNotFound)
}

func TestDeleteOnlyVersionLeavesNoLatest(t *testing.T) {
	f := newVersionFixture(t)
	only := f.create(t, 1)

	require.NoError(t, f.ctx.DeleteVersion(only.ID))

	_, err := f.ctx.LatestVersion(f.shot)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetVersionStatus(t *testing.T) {
	f := newVersionFixture(t)
	version := f.create(t, 1)

	require.NoError(t, f.ctx.SetVersionStatus(version.ID, models.ShotStatusReview))
	assert.ErrorIs(t, f.ctx.SetVersionStatus(version.ID, "done"), ErrInvalidStatus)
	assert.ErrorIs(t, f.ctx.SetVersionStatus(999, models.ShotStatusReview), ErrNotFound)

	versions, err := f.ctx.ListVersions(f.shot)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, models.ShotStatusReview, versions[0].Status)
}

func TestParseParentKind(t *testing.T) {
	kind, err := ParseParentKind("Shot")
	require.NoError(t, err)
	assert.Equal(t, ParentShot, kind)
	assert.Equal(t, "shot", kind.String())

	kind, err = ParseParentKind("sequence")
	require.NoError(t, err)
	assert.Equal(t, ParentSequence, kind)

	_, err = ParseParentKind("episode")
	assert.ErrorIs(t, err, ErrUnknownParentKind)
	assert.Equal(t, "unknown", ParentKind(42).String())
}
