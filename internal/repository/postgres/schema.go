package postgres

const createUsersTable = `CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	fullName TEXT NOT NULL DEFAULT '',
	givenName TEXT NOT NULL DEFAULT '',
	familyName TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	creationDate TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	lastUpdated TIMESTAMPTZ
)`

const createBugsTable = `CREATE TABLE IF NOT EXISTS bugs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	stepsToReproduce TEXT NOT NULL,
	classification TEXT NOT NULL DEFAULT 'unclassified',
	classifiedOn TIMESTAMPTZ,
	createdBy TEXT NOT NULL DEFAULT '',
	creationDate TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	lastUpdated TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS bugs_classification_idx ON bugs (classification, creationDate DESC)`

const createRolesTable = `CREATE TABLE IF NOT EXISTS roles (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	permissions TEXT[] NOT NULL DEFAULT '{}'
)`
