package design

const schema = `
CREATE TABLE IF NOT EXISTS product_designs (
    id TEXT PRIMARY KEY,
    model_code TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_designs_updated ON product_designs(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_designs_model ON product_designs(model_code);
`
