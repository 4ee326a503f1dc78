package querysql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerlens/offerql/internal/dialect"
	"github.com/offerlens/offerql/internal/queryir"
	"github.com/offerlens/offerql/internal/vocab"
)

// simpleFilterQuery selects one column under a single equality filter.
func simpleFilterQuery() *queryir.Query {
	return &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnCategory))},
		},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
		Where: queryir.Where(vocab.BoolAnd,
			queryir.AllOf(queryir.CompareValue(
				queryir.Col(vocab.ColumnVendor), vocab.CompareEq, queryir.String("Us"),
			)),
		),
	}
}

// priceGapQuery joins our offers to competitor offers through the match
// table and projects the per-row price difference.
func priceGapQuery() *queryir.Query {
	return &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.QualCol("my", vocab.ColumnProductName))},
			{
				Expr: queryir.BinaryExpr(queryir.BinaryArith{
					Left:  queryir.ColOperand(queryir.QualCol("my", vocab.ColumnMarkdownPrice)),
					Op:    vocab.ArithSub,
					Right: queryir.ColOperand(queryir.QualCol("comp", vocab.ColumnMarkdownPrice)),
				}),
				Alias: "gap",
			},
		},
		From: queryir.TableSource(vocab.TableProductOffers, "my"),
		Joins: []queryir.Join{
			{
				Kind:  vocab.JoinInner,
				Table: vocab.TableExactMatches,
				Alias: "em",
				On: []queryir.JoinCondition{{
					LeftAlias: "my", LeftColumn: vocab.ColumnID,
					RightAlias: "em", RightColumn: vocab.ColumnSourceID,
				}},
			},
			{
				Kind:  vocab.JoinInner,
				Table: vocab.TableProductOffers,
				Alias: "comp",
				On: []queryir.JoinCondition{{
					LeftAlias: "em", LeftColumn: vocab.ColumnMatchedID,
					RightAlias: "comp", RightColumn: vocab.ColumnID,
				}},
			},
		},
		Where: queryir.Where(vocab.BoolAnd,
			queryir.AllOf(queryir.CompareValue(
				queryir.QualCol("my", vocab.ColumnVendor), vocab.CompareEq, queryir.String("Us"),
			)),
		),
		OrderBy: &queryir.Ordering{Terms: []queryir.OrderTerm{
			queryir.OrderByAlias("gap", vocab.SortDesc),
		}},
		Pagination: &queryir.Pagination{Limit: 20},
	}
}

// belowAverageQuery compares a column against a scalar aggregate
// subquery over the same table.
func belowAverageQuery() *queryir.Query {
	return &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnProductName))},
		},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
		Where: &queryir.FilterWithSubqueries{
			Op: vocab.BoolAnd,
			Groups: []queryir.ConditionGroup{
				queryir.AllOf(queryir.CompareValue(
					queryir.Col(vocab.ColumnCategory), vocab.CompareEq, queryir.String("tools"),
				)),
			},
			SubqueryConditions: []queryir.SubqueryCondition{{
				Column: queryir.Col(vocab.ColumnMarkdownPrice),
				Op:     vocab.CompareLt,
				Subquery: queryir.ScalarSubquery{
					Table: vocab.TableProductOffers,
					Aggregate: queryir.AggregateCall{
						Func:   vocab.AggAvg,
						Column: &queryir.ColumnRef{Column: vocab.ColumnMarkdownPrice},
					},
					Filter: &queryir.Filter{
						Op: vocab.BoolAnd,
						Groups: []queryir.ConditionGroup{
							queryir.AllOf(queryir.CompareValue(
								queryir.Col(vocab.ColumnCategory), vocab.CompareEq, queryir.String("tools"),
							)),
						},
					},
				},
			}},
		},
	}
}

// availabilityQuery buckets stock levels with a CASE expression.
func availabilityQuery() *queryir.Query {
	return &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnProductName))},
			{
				Expr: queryir.CaseExpression(queryir.CaseExpr{
					Branches: []queryir.CaseBranch{
						{
							When: queryir.CompareValue(queryir.Col(vocab.ColumnStockQty), vocab.CompareEq, queryir.Number(0)),
							Then: queryir.String("out"),
						},
						{
							When: queryir.CompareValue(queryir.Col(vocab.ColumnStockQty), vocab.CompareLt, queryir.Number(10)),
							Then: queryir.String("low"),
						},
					},
					Else: &queryir.Literal{Kind: queryir.LiteralString, Str: "ok"},
				}),
				Alias: "availability",
			},
		},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
	}
}

// categoryStatsQuery groups with HAVING over an aggregate.
func categoryStatsQuery() *queryir.Query {
	return &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnCategory))},
			{
				Expr: queryir.AggregateExpr(queryir.AggregateCall{
					Func:   vocab.AggAvg,
					Column: &queryir.ColumnRef{Column: vocab.ColumnMarkdownPrice},
				}),
				Alias: "avg_price",
			},
		},
		From:    queryir.TableSource(vocab.TableProductOffers, ""),
		GroupBy: &queryir.Grouping{Columns: []queryir.ColumnRef{queryir.Col(vocab.ColumnCategory)}},
		Having: &queryir.Having{
			Op: vocab.BoolAnd,
			Conditions: []queryir.HavingCondition{{
				Aggregate: queryir.AggregateCall{Func: vocab.AggCount},
				Op:        vocab.CompareGt,
				Value:     queryir.Number(5),
			}},
		},
		OrderBy: &queryir.Ordering{Terms: []queryir.OrderTerm{
			queryir.OrderByAlias("avg_price", vocab.SortDesc),
		}},
	}
}

func TestRenderScenarios(t *testing.T) {
	tests := []struct {
		name  string
		query *queryir.Query
		want  string
	}{
		{
			name:  "simple filter",
			query: simpleFilterQuery(),
			want:  "SELECT category FROM product_offers WHERE vendor = 'Us'",
		},
		{
			name:  "price gap with joins",
			query: priceGapQuery(),
			want: "SELECT my.product_name, (my.markdown_price - comp.markdown_price) AS gap" +
				" FROM product_offers AS my" +
				" INNER JOIN exact_matches AS em ON my.id = em.source_id" +
				" INNER JOIN product_offers AS comp ON em.matched_id = comp.id" +
				" WHERE my.vendor = 'Us' ORDER BY gap DESC LIMIT 20",
		},
		{
			name:  "scalar subquery comparison",
			query: belowAverageQuery(),
			want: "SELECT product_name FROM product_offers" +
				" WHERE category = 'tools'" +
				" AND markdown_price < (SELECT AVG(markdown_price) FROM product_offers WHERE category = 'tools')",
		},
		{
			name:  "case buckets",
			query: availabilityQuery(),
			want: "SELECT product_name," +
				" CASE WHEN stock_qty = 0 THEN 'out' WHEN stock_qty < 10 THEN 'low' ELSE 'ok' END AS availability" +
				" FROM product_offers",
		},
		{
			name:  "group having order",
			query: categoryStatsQuery(),
			want: "SELECT category, AVG(markdown_price) AS avg_price FROM product_offers" +
				" GROUP BY category HAVING COUNT(*) > 5 ORDER BY avg_price DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := Render(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestRenderAggregates(t *testing.T) {
	tests := []struct {
		name string
		agg  queryir.AggregateCall
		want string
	}{
		{
			name: "star count",
			agg:  queryir.AggregateCall{Func: vocab.AggCount},
			want: "COUNT(*)",
		},
		{
			name: "distinct count",
			agg: queryir.AggregateCall{
				Func:     vocab.AggCount,
				Column:   &queryir.ColumnRef{Column: vocab.ColumnVendor},
				Distinct: true,
			},
			want: "COUNT(DISTINCT vendor)",
		},
		{
			name: "aggregate of difference",
			agg: queryir.AggregateCall{
				Func: vocab.AggAvg,
				Input: &queryir.BinaryArith{
					Left:  queryir.ColOperand(queryir.Col(vocab.ColumnListPrice)),
					Op:    vocab.ArithSub,
					Right: queryir.ColOperand(queryir.Col(vocab.ColumnMarkdownPrice)),
				},
			},
			want: "AVG((list_price - markdown_price))",
		},
		{
			name: "percentile",
			agg: queryir.AggregateCall{
				Func:       vocab.AggPercentileCont,
				Column:     &queryir.ColumnRef{Column: vocab.ColumnMarkdownPrice},
				Percentile: queryir.Percentile(0.9),
			},
			want: "PERCENTILE_CONT(0.9) WITHIN GROUP (ORDER BY markdown_price)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &queryir.Query{
				Select: []queryir.SelectItem{{Expr: queryir.AggregateExpr(tt.agg), Alias: "v"}},
				From:   queryir.TableSource(vocab.TableProductOffers, ""),
			}
			sql, err := Render(q)
			require.NoError(t, err)
			assert.Equal(t, "SELECT "+tt.want+" AS v FROM product_offers", sql)
		})
	}
}

// The difference is aggregated per row, not derived from two separate
// aggregates: AVG((a - b)) and AVG(a) - AVG(b) must render differently.
func TestRenderAggregateOfDifferenceIsNotDifferenceOfAggregates(t *testing.T) {
	perRow := queryir.AggregateExpr(queryir.AggregateCall{
		Func: vocab.AggAvg,
		Input: &queryir.BinaryArith{
			Left:  queryir.ColOperand(queryir.Col(vocab.ColumnListPrice)),
			Op:    vocab.ArithSub,
			Right: queryir.ColOperand(queryir.Col(vocab.ColumnMarkdownPrice)),
		},
	})
	q := &queryir.Query{
		Select: []queryir.SelectItem{{Expr: perRow, Alias: "avg_discount"}},
		From:   queryir.TableSource(vocab.TableProductOffers, ""),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "AVG((list_price - markdown_price))")
	assert.NotContains(t, sql, "AVG(list_price)")
}

func TestRenderCompoundArithmetic(t *testing.T) {
	q := &queryir.Query{
		Select: []queryir.SelectItem{{
			Expr: queryir.CompoundExpr(queryir.CompoundArith{
				Base: queryir.BinaryArith{
					Left:  queryir.ColOperand(queryir.Col(vocab.ColumnListPrice)),
					Op:    vocab.ArithSub,
					Right: queryir.ColOperand(queryir.Col(vocab.ColumnMarkdownPrice)),
				},
				Op:      vocab.ArithDiv,
				Operand: queryir.ColOperand(queryir.Col(vocab.ColumnListPrice)),
			}),
			Alias: "discount_rate",
		}},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT ((list_price - markdown_price) / list_price) AS discount_rate FROM product_offers",
		sql)
}

func TestRenderWindow(t *testing.T) {
	q := &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnOfferID))},
			{
				Expr: queryir.WindowExpr(queryir.WindowCall{
					Func:        vocab.WindowLag,
					Column:      &queryir.ColumnRef{Column: vocab.ColumnPrice},
					PartitionBy: []queryir.ColumnRef{queryir.Col(vocab.ColumnOfferID)},
					OrderBy: []queryir.OrderTerm{
						queryir.OrderByColumn(queryir.Col(vocab.ColumnRecordedAt), vocab.SortAsc),
					},
				}),
				Alias: "prev_price",
			},
		},
		From: queryir.TableSource(vocab.TablePriceHistory, ""),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT offer_id, LAG(price, 1) OVER (PARTITION BY offer_id ORDER BY recorded_at ASC) AS prev_price"+
			" FROM price_history",
		sql)
}

func TestRenderRankingWindowHasEmptyArgs(t *testing.T) {
	q := &queryir.Query{
		Select: []queryir.SelectItem{{
			Expr: queryir.WindowExpr(queryir.WindowCall{
				Func: vocab.WindowRowNumber,
				OrderBy: []queryir.OrderTerm{
					queryir.OrderByColumn(queryir.Col(vocab.ColumnMarkdownPrice), vocab.SortAsc),
				},
			}),
			Alias: "rn",
		}},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "ROW_NUMBER() OVER (ORDER BY markdown_price ASC)")
}

func TestRenderDerivedTable(t *testing.T) {
	q := &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.QualCol("b", vocab.ColumnCategory))},
		},
		From: queryir.DerivedSource(queryir.DerivedTable{
			Select: []queryir.SelectItem{
				{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnCategory))},
			},
			Table: vocab.TableProductOffers,
			Filter: &queryir.Filter{
				Op: vocab.BoolAnd,
				Groups: []queryir.ConditionGroup{
					queryir.AllOf(queryir.CompareValue(
						queryir.Col(vocab.ColumnStockQty), vocab.CompareGt, queryir.Number(0),
					)),
				},
			},
			Alias: "b",
		}),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT b.category FROM (SELECT category FROM product_offers WHERE stock_qty > 0) AS b",
		sql)
}

func TestRenderConditionGroups(t *testing.T) {
	// Multi-condition groups are parenthesized; the outer combinator
	// joins them without re-associating.
	q := &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnProductName))},
		},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
		Where: queryir.Where(vocab.BoolOr,
			queryir.AllOf(
				queryir.CompareValue(queryir.Col(vocab.ColumnCategory), vocab.CompareEq, queryir.String("tools")),
				queryir.CompareValue(queryir.Col(vocab.ColumnStockQty), vocab.CompareGt, queryir.Number(0)),
			),
			queryir.AllOf(
				queryir.CompareValue(queryir.Col(vocab.ColumnCategory), vocab.CompareEq, queryir.String("hardware")),
				queryir.CompareValue(queryir.Col(vocab.ColumnRating), vocab.CompareGte, queryir.Number(4)),
			),
		),
	}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_name FROM product_offers"+
			" WHERE (category = 'tools' AND stock_qty > 0)"+
			" OR (category = 'hardware' AND rating >= 4)",
		sql)
}

func TestRenderNullComparisons(t *testing.T) {
	base := func(op vocab.CompareOp) *queryir.Query {
		return &queryir.Query{
			Select: []queryir.SelectItem{
				{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnProductName))},
			},
			From: queryir.TableSource(vocab.TableProductOffers, ""),
			Where: queryir.Where(vocab.BoolAnd,
				queryir.AllOf(queryir.CompareValue(queryir.Col(vocab.ColumnBrand), op, queryir.Null())),
			),
		}
	}

	sql, err := Render(base(vocab.CompareEq))
	require.NoError(t, err)
	assert.Contains(t, sql, "brand IS NULL")

	sql, err = Render(base(vocab.CompareNeq))
	require.NoError(t, err)
	assert.Contains(t, sql, "brand IS NOT NULL")
}

func TestRenderStringEscaping(t *testing.T) {
	q := simpleFilterQuery()
	q.Where.Groups[0].Conditions[0].Value = func() *queryir.Literal {
		l := queryir.String("O'Brien's")
		return &l
	}()
	sql, err := Render(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "'O''Brien''s'")
}

func TestRenderPaginationOffset(t *testing.T) {
	q := simpleFilterQuery()
	q.Pagination = &queryir.Pagination{Limit: 10, Offset: 30}
	sql, err := Render(q)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, "LIMIT 10 OFFSET 30"), sql)
}

func TestRenderBooleanLiteralPerDialect(t *testing.T) {
	q := &queryir.Query{
		Select: []queryir.SelectItem{
			{Expr: queryir.ColumnExpr(queryir.Col(vocab.ColumnProductName))},
			{Expr: queryir.CaseExpression(queryir.CaseExpr{
				Branches: []queryir.CaseBranch{{
					When: queryir.CompareValue(queryir.Col(vocab.ColumnStockQty), vocab.CompareGt, queryir.Number(0)),
					Then: queryir.Bool(true),
				}},
				Else: func() *queryir.Literal { l := queryir.Bool(false); return &l }(),
			}), Alias: "in_stock"},
		},
		From: queryir.TableSource(vocab.TableProductOffers, ""),
	}

	sqlite, err := NewRenderer(dialect.SQLite).Render(q)
	require.NoError(t, err)
	assert.Contains(t, sqlite, "THEN 1 ELSE 0 END")

	standard, err := NewRenderer(dialect.Standard).Render(q)
	require.NoError(t, err)
	assert.Contains(t, standard, "THEN TRUE ELSE FALSE END")
}

func TestRenderRejectsInvalidQuery(t *testing.T) {
	q := simpleFilterQuery()
	q.Select = nil
	_, err := Render(q)
	require.Error(t, err)

	_, err = Render(nil)
	require.Error(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	q := priceGapQuery()
	first, err := Render(q)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(q)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func allRenderFixtures() map[string]*queryir.Query {
	return map[string]*queryir.Query{
		"simple":   simpleFilterQuery(),
		"gap":      priceGapQuery(),
		"subquery": belowAverageQuery(),
		"case":     availabilityQuery(),
		"stats":    categoryStatsQuery(),
	}
}

func TestRenderBalancedParentheses(t *testing.T) {
	for name, q := range allRenderFixtures() {
		t.Run(name, func(t *testing.T) {
			sql, err := Render(q)
			require.NoError(t, err)
			depth := 0
			for _, r := range sql {
				switch r {
				case '(':
					depth++
				case ')':
					depth--
				}
				require.GreaterOrEqual(t, depth, 0, "close before open in %q", sql)
			}
			assert.Zero(t, depth, "unbalanced parentheses in %q", sql)
		})
	}
}

func TestRenderClauseOrder(t *testing.T) {
	sql, err := Render(priceGapQuery())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(sql, "SELECT "))
	order := []string{" FROM ", " INNER JOIN ", " WHERE ", " ORDER BY ", " LIMIT "}
	last := 0
	for _, kw := range order {
		i := strings.Index(sql[last:], kw)
		require.GreaterOrEqual(t, i, 0, "missing %q after offset %d in %q", kw, last, sql)
		last += i + len(kw)
	}
}

func TestRenderNoTrailingWhitespace(t *testing.T) {
	for name, q := range allRenderFixtures() {
		t.Run(name, func(t *testing.T) {
			sql, err := Render(q)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(sql), sql)
			assert.NotContains(t, sql, "  ")
		})
	}
}
