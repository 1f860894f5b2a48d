package services

import "alfredoptarigan/occupation-classifier/internal/models"

var fallbackEntries = []models.OccupationEntry{
	{
		Code:        "11",
		Name:        "管理的職業従事者",
		Description: "会社役員、企業の部課長、管理職。組織の経営方針の決定や業務の管理・監督を行う。",
	},
	{
		Code:        "21",
		Name:        "一般事務従事者",
		Description: "庶務、人事、経理、総務、秘書など。エクセル集計、書類作成、データ入力、電話応対などのオフィスワーク。",
	},
	{
		Code:        "25",
		Name:        "会計事務従事者",
		Description: "経理担当者、会計係、簿記担当。会社の会計業務、伝票処理、決算業務、財務諸表作成。",
	},
	{
		Code:        "32",
		Name:        "保安職業従事者",
		Description: "自衛官、警察官、消防隊員、消防士、海上保安官、警備員。火災の消火活動、救急救命、治安維持、災害対応。",
	},
	{
		Code:        "35",
		Name:        "介護サービス職業従事者",
		Description: "介護福祉士、ホームヘルパー、ケアワーカー。高齢者や障害者の身体介護、生活援助、介護施設での勤務。",
	},
	{
		Code:        "41",
		Name:        "販売従事者",
		Description: "小売店員、営業職、セールス、shop店員。商品販売、接客、レジ業務、在庫管理、顧客対応。",
	},
	{
		Code:        "52",
		Name:        "飲食物調理従事者",
		Description: "調理師、コック、料理人、シェフ、板前。レストラン、ホテル、食堂などでの料理の調理。",
	},
	{
		Code:        "61",
		Name:        "農林漁業従事者",
		Description: "農家、漁師、林業作業者。農作物の栽培、漁業、林業、畜産などの第一次産業。",
	},
	{
		Code:        "71",
		Name:        "製造・加工処理従事者",
		Description: "工場作業員、製造オペレーター、組立工。製品の製造、機械操作、品質検査、組立作業。",
	},
	{
		Code:        "81",
		Name:        "建設・採掘従事者",
		Description: "大工、建築作業員、土木作業員、鉱山作業員。建設現場での建築、土木工事、採掘作業。",
	},
	{
		Code:        "91",
		Name:        "運搬・清掃・包装等従事者",
		Description: "トラック運転手、配達員、清掃員、倉庫作業員。荷物の運搬、清掃業務、梱包作業。",
	},
	{
		Code:        "12",
		Name:        "情報処理・通信技術者",
		Description: "システムエンジニア、プログラマー、SE、ソフトウェア開発者、Webエンジニア、アプリ開発。コーディング、システム設計、データベース管理。",
	},
	{
		Code:        "14",
		Name:        "建築・土木・測量技術者",
		Description: "建築士、土木技術者、測量士、設計士。建物や構造物の設計、測量、施工管理。",
	},
	{
		Code:        "15",
		Name:        "医師・歯科医師・獣医師・薬剤師",
		Description: "医師、歯科医、獣医、薬剤師。診療、治療、処方、手術、健康管理、薬の調剤。",
	},
	{
		Code:        "16",
		Name:        "保健師・助産師・看護師",
		Description: "看護師、保健師、助産師。患者のケア、健康指導、医療補助、病院や診療所での勤務。",
	},
	{
		Code:        "17",
		Name:        "教員",
		Description: "小学校教員、中学校教員、高校教員、大学教授、塾講師、教師。学校での授業、教育、生徒指導。",
	},
}

// FallbackCatalog returns the built-in 16-entry catalog used when no CSV
// source is available.
func FallbackCatalog() *Catalog {
	return NewCatalog(fallbackEntries, fallbackSource)
}
