package postgres

// schema is the DDL for the single jvm table (spec §6), applied at
// Open time if missing. Columns mirror artifact.Record's json tags
// exactly, plus created_at/modified_at and the identity unique index.
const schema = `
CREATE TABLE IF NOT EXISTS jvm (
	vendor        text NOT NULL,
	version       text NOT NULL,
	java_version  text NOT NULL,
	os            text NOT NULL,
	architecture  text NOT NULL,
	image_type    text NOT NULL,
	file_type     text NOT NULL,
	filename      text NOT NULL,
	url           text NOT NULL,
	release_type  text NOT NULL,
	jvm_impl      text NOT NULL,
	features      text[],
	checksum      text,
	checksum_url  text,
	size          bigint,
	created_at    timestamptz NOT NULL DEFAULT now(),
	modified_at   timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (vendor, version, os, architecture, image_type, file_type)
);
`
