package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id          TEXT PRIMARY KEY,
    taken_at             TEXT NOT NULL,
    checking_cents       INTEGER NOT NULL,
    savings_cents        INTEGER NOT NULL,
    market_value_cents   INTEGER NOT NULL DEFAULT 0,
    saved_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_cards (
    snapshot_id          TEXT NOT NULL REFERENCES snapshots(snapshot_id) ON DELETE CASCADE,
    card_id              TEXT NOT NULL,
    name                 TEXT NOT NULL,
    balance_cents        INTEGER NOT NULL,
    apr_bps              INTEGER NOT NULL DEFAULT 0,
    min_payment_cents    INTEGER NOT NULL DEFAULT 0,
    due_day              INTEGER NOT NULL DEFAULT 0,
    promo_expires        TEXT,
    PRIMARY KEY (snapshot_id, card_id)
);

CREATE TABLE IF NOT EXISTS snapshot_renewals (
    snapshot_id          TEXT NOT NULL REFERENCES snapshots(snapshot_id) ON DELETE CASCADE,
    name                 TEXT NOT NULL,
    amount_cents         INTEGER NOT NULL,
    next_due             TEXT NOT NULL,
    interval_count       INTEGER NOT NULL DEFAULT 1,
    interval_unit        TEXT NOT NULL DEFAULT 'month',
    charged_to_card      TEXT,
    cancelled            INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, name)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at);
`
