package minigames

// Fortunes are the naemikuji outcomes, best first
var Fortunes = []string{"大苗 🎉", "中苗 😊", "苗 🙂", "小苗 😌", "末苗 😐", "狐 😢", "大狐 😱"}

// DefaultKits is the built-in Bed Wars kit list
var DefaultKits = []string{
	"ノーキット", "ランダム", "アデトゥンデ", "アグニ", "サンショウウオのエーミーさん", "ベグザット",
	"サイバー", "へファイストス", "灼熱のシールダー", "クリスタル", "リアン", "ルーメンちゃん",
	"メロディ", "Nahla", "海賊のデイビー", "スティクス", "タリヤ", "トリクシー", "ウマ",
	"ヴァネッサ", "虚空の騎士", "ささやき", "レン", "ゼノ（魔法使い）", "ベイカー", "ヤバン人",
	"ルシア", "ナザール", "イザベル", "マルセル", "マーティン", "ラグナー", "Ramil", "アラクネ",
	"エンバー", "アーチャー", "ビルダー", "遺体安置所", "デス・アダー", "エルダー・ツリー",
	"エルドリック", "エベリン", "農家のクリタス", "フレーヤ", "死神", "グローブ", "ハンナ",
	"カイダ", "ラシー", "ライラ", "マリーナ", "ミロ", "マイナー", "シェイラ", "シグリッド",
	"サイラス", "スコル", "トリニティ", "トライトン", "ヴォイドリージェント", "バルカン",
	"ユジ", "ゼニス", "エアリー", "錬金術師", "アレース", "養蜂家のビートリックスさん", "賞金稼ぎ",
	"ケイトリン", "コバルト", "コグスワース", "征服者", "ワニオオカミ", "きょうりゅう手なずけ師のドム",
	"ドリル", "エレクトラ", "漁師", "フローラ", "フォルトゥナ", "フロスティ", "ジンジャーブレッドマン",
	"ゴンビイさん", "イグニス", "ジャック", "ジェイド", "カライヤちゃん", "ラニ", "商人のマルコさん",
	"メタルディテクターさん", "ノエル", "ニョカ", "ニュクス", "パイロキネシス", "からす", "サンタ",
	"羊飼い", "スモーク", "スピリットキャッチャーさん", "スターコレクターのステラちゃん", "テラ",
	"トラッパー", "ウンブラ", "梅子", "ウォーデン", "戦士", "ウィムさん", "シューロット", "ヤミニ",
	"イエティ", "ゼファー",
}
