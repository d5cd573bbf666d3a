package heatmap

import "html/template"

var pageTemplate = template.Must(template.New("heatmap").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "Helvetica Neue", Arial, "Hiragino Sans", "Hiragino Kaku Gothic ProN", Meiryo, sans-serif;
            background: #1a1a2e;
            color: #e0e0e0;
            padding: 16px;
        }
        .header {
            text-align: center;
            margin-bottom: 20px;
        }
        .header h1 {
            font-size: 1.6rem;
            color: #ffffff;
            margin-bottom: 4px;
        }
        .header .updated {
            font-size: 0.85rem;
            color: #aaa;
        }
        .controls {
            display: flex;
            justify-content: center;
            gap: 8px;
            margin-bottom: 20px;
            flex-wrap: wrap;
        }
        .controls button {
            padding: 8px 16px;
            border: 1px solid #555;
            background: #2a2a4a;
            color: #e0e0e0;
            border-radius: 6px;
            cursor: pointer;
            font-size: 0.85rem;
            transition: background 0.2s;
        }
        .controls button:hover {
            background: #3a3a6a;
        }
        .controls button.active {
            background: #4a4a8a;
            border-color: #7a7aff;
        }
        .legend {
            display: flex;
            justify-content: center;
            gap: 4px;
            margin-bottom: 20px;
            flex-wrap: wrap;
            font-size: 0.75rem;
        }
        .legend-item {
            display: flex;
            align-items: center;
            gap: 4px;
        }
        .legend-color {
            width: 16px;
            height: 16px;
            border-radius: 3px;
        }
        .sector-group {
            margin-bottom: 24px;
        }
        .sector-title {
            font-size: 1rem;
            color: #ccc;
            border-bottom: 1px solid #444;
            padding-bottom: 4px;
            margin-bottom: 8px;
        }
        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(110px, 1fr));
            gap: 4px;
        }
        .tile {
            padding: 8px 6px;
            border-radius: 6px;
            text-align: center;
            cursor: default;
            transition: transform 0.15s, box-shadow 0.15s;
            min-height: 80px;
            display: flex;
            flex-direction: column;
            justify-content: center;
        }
        .tile:hover {
            transform: scale(1.08);
            box-shadow: 0 4px 12px rgba(0,0,0,0.4);
            z-index: 10;
            position: relative;
        }
        .tile-name {
            font-size: 0.75rem;
            font-weight: 700;
            line-height: 1.2;
            margin-bottom: 2px;
            overflow: hidden;
            text-overflow: ellipsis;
            white-space: nowrap;
        }
        .tile-code {
            font-size: 0.65rem;
            opacity: 0.8;
        }
        .tile-change {
            font-size: 0.9rem;
            font-weight: 700;
            margin-top: 2px;
        }
        .tile-price {
            font-size: 0.6rem;
            opacity: 0.7;
            margin-top: 1px;
        }
        .flat-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(110px, 1fr));
            gap: 4px;
        }
        @media (max-width: 600px) {
            .grid, .flat-grid {
                grid-template-columns: repeat(auto-fill, minmax(90px, 1fr));
            }
            .tile { min-height: 70px; padding: 6px 4px; }
            .tile-name { font-size: 0.65rem; }
            .tile-change { font-size: 0.8rem; }
            .header h1 { font-size: 1.2rem; }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <div class="updated">最終更新: {{.UpdatedAt}}</div>
    </div>

    <div class="legend">
        {{range .Legend}}<div class="legend-item"><div class="legend-color" style="background:{{.Background}}"></div><span>{{.Label}}</span></div>
        {{end}}
    </div>

    <div class="controls">
        <button class="active" data-mode="sector">業種順</button>
        <button data-mode="change_desc">上昇率順</button>
        <button data-mode="change_asc">下落率順</button>
        <button data-mode="code">コード順</button>
    </div>

    <div id="content">
        {{range .Groups}}<div class="sector-group" data-sector="{{.Name}}">
            <h2 class="sector-title">{{.Name}}</h2>
            <div class="grid">
                {{range .Tiles}}<div class="tile" data-sector="{{.Sector}}" data-code="{{.Code}}" data-change="{{.DataChange}}" style="background-color:{{.Background}};color:{{.Text}}">
                    <div class="tile-name">{{.Name}}</div>
                    <div class="tile-code">{{.Code}}</div>
                    <div class="tile-change">{{.Change}}</div>
                    <div class="tile-price">{{.Price}}</div>
                </div>
                {{end}}
            </div>
        </div>
        {{end}}
    </div>

    <script>
    const stockData = {{.StockJSON}};
    const buckets = {{.BucketJSON}};
    const absentBucket = {{.AbsentJSON}};

    function classify(pct) {
        if (pct === null) return absentBucket;
        for (const b of buckets) {
            if (b.min === null || pct >= b.min) return b;
        }
        return buckets[buckets.length - 1];
    }

    function numCode(code) {
        const v = parseInt(code, 10);
        return isNaN(v) ? 2147483647 : v;
    }

    function byCode(a, b) {
        return a.code < b.code ? -1 : a.code > b.code ? 1 : 0;
    }

    function makeTile(s) {
        const b = classify(s.change_pct);
        const change = s.change_pct !== null ? (s.change_pct >= 0 ? '+' : '') + s.change_pct.toFixed(2) + '%' : 'N/A';
        const price = s.price !== null ? '¥' + Math.round(s.price).toLocaleString('ja-JP') : '';
        return '<div class="tile" style="background-color:' + b.bg + ';color:' + b.fg + '">'
            + '<div class="tile-name">' + s.name + '</div>'
            + '<div class="tile-code">' + s.code + '</div>'
            + '<div class="tile-change">' + change + '</div>'
            + '<div class="tile-price">' + price + '</div>'
            + '</div>';
    }

    function sortBy(mode) {
        const content = document.getElementById('content');

        if (mode === 'sector') {
            const groups = {};
            stockData.forEach(s => {
                if (!groups[s.sector]) groups[s.sector] = [];
                groups[s.sector].push(s);
            });
            const sectorOrder = Object.keys(groups).sort((a, b) => {
                const minA = Math.min(...groups[a].map(s => numCode(s.code)));
                const minB = Math.min(...groups[b].map(s => numCode(s.code)));
                return minA - minB;
            });
            let html = '';
            sectorOrder.forEach(sector => {
                const items = groups[sector].slice().sort(byCode);
                html += '<div class="sector-group"><h2 class="sector-title">' + sector + '</h2><div class="grid">';
                items.forEach(s => { html += makeTile(s); });
                html += '</div></div>';
            });
            content.innerHTML = html;
            return;
        }

        let sorted;
        if (mode === 'change_desc') {
            sorted = stockData.slice().sort((a, b) => (b.change_pct || 0) - (a.change_pct || 0));
        } else if (mode === 'change_asc') {
            sorted = stockData.slice().sort((a, b) => (a.change_pct || 0) - (b.change_pct || 0));
        } else {
            sorted = stockData.slice().sort(byCode);
        }

        let html = '<div class="flat-grid">';
        sorted.forEach(s => { html += makeTile(s); });
        html += '</div>';
        content.innerHTML = html;
    }

    document.querySelectorAll('.controls button').forEach(btn => {
        btn.addEventListener('click', () => {
            document.querySelectorAll('.controls button').forEach(b => b.classList.remove('active'));
            btn.classList.add('active');
            sortBy(btn.dataset.mode);
        });
    });
    </script>
</body>
</html>
`
