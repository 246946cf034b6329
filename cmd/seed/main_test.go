package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeCSV_Windows1251(t *testing.T) {
	src := "Наименование;Тип;Цена;Описание\nБентонит;глина;12,50;Для бурения\n"
	encoded, err := charmap.Windows1251.NewEncoder().String(src)
	require.NoError(t, err)

	records, err := decodeCSV(strings.NewReader(encoded), "windows-1251")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Бентонит", records[0][0])

	products, err := parseProducts(records)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "12.50", products[0].Price.StringFixed(2))
	assert.Equal(t, "Для бурения", products[0].Description)
}

func TestParseProducts_IDEstableYSinDuplicados(t *testing.T) {
	records := [][]string{{"Bentonita", "", ""}, {"Bentonita", "x", "1"}, {"Caolín"}}
	a, err := parseProducts(records)
	require.NoError(t, err)
	b, err := parseProducts(records)
	require.NoError(t, err)

	require.Len(t, a, 2)
	assert.Equal(t, a[0].ID, b[0].ID)
	assert.Nil(t, a[0].Price)

	_, err = parseProducts([][]string{{"X", "", "abc"}})
	assert.Error(t, err)
}

func TestWriteSeed(t *testing.T) {
	var buf bytes.Buffer
	products, err := parseProducts([][]string{{"Arcilla d'Or", "", "3"}})
	require.NoError(t, err)
	warehouses := parseWarehouses([][]string{{"Central", "", "Calle 10"}})

	require.NoError(t, writeSeed(&buf, products, warehouses))
	out := buf.String()
	assert.Contains(t, out, "-- +goose Up")
	assert.Contains(t, out, "-- +goose Down")
	assert.Contains(t, out, "'Arcilla d''Or'")
	assert.Contains(t, out, "3.00")
	assert.Less(t, strings.Index(out, "INSERT INTO warehouses"), strings.Index(out, "INSERT INTO products"))

	assert.Error(t, writeSeed(&buf, nil, nil))
}
