package main

type ProjectOverview struct {
	ProjectID     uint
	Name          string
	Path          string
	SequenceCount int64
	ShotCount     int64
	VersionCount  int64
}

type ShotOverview struct {
	SequenceName  string
	ShotName      *string
	Status        *string
	LatestVersion *uint
}

func QueryProjectOverview() string {
	return `
SELECT		p.id project_id,
			p.name,
			p.path,
			(
				SELECT	COUNT(*)
				FROM	sequences s
				WHERE	s.project_id = p.id
			) sequence_count,
			(
				SELECT	COUNT(*)
				FROM	shots sh
				JOIN	sequences s ON sh.sequence_id = s.id
				WHERE	s.project_id = p.id
			) shot_count,
			(
				SELECT	COUNT(*)
				FROM	versions v
				WHERE	v.project_id = p.id
				OR		v.sequence_id IN (SELECT s.id FROM sequences s WHERE s.project_id = p.id)
				OR		v.shot_id IN (
							SELECT	sh.id
							FROM	shots sh
							JOIN	sequences s ON sh.sequence_id = s.id
							WHERE	s.project_id = p.id
						)
			) version_count
FROM		projects p
ORDER BY	p.name
`
}

func QueryShotsWithLatestVersion() string {
	return `
SELECT		s.name sequence_name,
			sh.name shot_name,
			sh.status,
			v.version_number latest_version
FROM		sequences s
LEFT JOIN	shots sh ON sh.sequence_id = s.id
LEFT JOIN	versions v ON v.shot_id = sh.id
			AND v.version_type = 'shot'
			AND v.is_latest = ?
WHERE		s.project_id = ?
ORDER BY	s.name, sh.name -- for deterministic result order
`
}

func (ctx *Context) ProjectOverviews() ([]ProjectOverview, error) {
	var overviews []ProjectOverview
	result := ctx.DB.Raw(QueryProjectOverview()).Scan(&overviews)

	return overviews, result.Error
}

func (ctx *Context) ShotOverviews(projectID uint) ([]ShotOverview, error) {
	var overviews []ShotOverview
	result := ctx.DB.Raw(QueryShotsWithLatestVersion(), true, projectID).Scan(&overviews)

	return overviews, result.Error
}
