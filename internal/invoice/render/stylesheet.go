package render

// Stylesheet is the shared visual styling for the rendered invoice fragment.
// The print document embeds it verbatim; the download path compiles it into
// per-element inline styles so the exported file carries no stylesheet
// dependency.
const Stylesheet = `
.print-invoice { font-family: 'Segoe UI', 'Helvetica Neue', Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 48px 40px; line-height: 1.6; color: #000000; background-color: #ffffff; }
.print-invoice p { margin: 0; }
.invoice-header { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 3px solid #1a1a1a; padding-bottom: 28px; margin-bottom: 28px; }
.seller-name { font-size: 32px; font-weight: 800; letter-spacing: -0.5px; color: #111111; margin: 0; }
.seller-tagline { font-size: 13px; color: #666666; margin-top: 4px; }
.seller-contact { margin-top: 14px; font-size: 12px; color: #888888; line-height: 1.8; }
.invoice-meta { text-align: right; }
.invoice-title { font-size: 26px; font-weight: 700; color: #111111; margin: 0; letter-spacing: 1px; }
.meta-rows { margin-top: 14px; font-size: 13px; line-height: 2; }
.muted { color: #888888; }
.address-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; margin-bottom: 32px; }
.block-title { font-size: 11px; font-weight: 700; text-transform: uppercase; color: #999999; margin-bottom: 8px; letter-spacing: 1.5px; }
.recipient { font-weight: 600; font-size: 14px; margin-bottom: 4px; }
.address-line { font-size: 13px; color: #555555; margin-bottom: 2px; }
.payment-method { margin-bottom: 24px; font-size: 13px; }
.items { width: 100%; border-collapse: collapse; margin-bottom: 28px; }
.items th { text-align: left; padding: 12px 8px; font-size: 11px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; color: #666666; border-bottom: 2px solid #222222; }
.items td { padding: 12px 8px; font-size: 13px; border-bottom: 1px solid #e5e5e5; }
.col-index { width: 5%; }
.col-desc { width: 45%; }
.col-qty { width: 10%; text-align: center; }
.col-price { width: 20%; text-align: right; }
.col-amount { width: 20%; text-align: right; }
.num-center { text-align: center; }
.num-right { text-align: right; }
.item-name { font-weight: 500; }
.item-size { display: block; font-size: 11px; color: #888888; }
.item-thumb { width: 32px; height: 32px; margin-right: 8px; vertical-align: middle; }
.item-thumb-empty { display: inline-block; background-color: #eeeeee; }
.item-amount { font-weight: 600; }
.totals-wrap { display: flex; justify-content: flex-end; margin-bottom: 32px; }
.totals { width: 300px; }
.totals-row { display: flex; justify-content: space-between; padding: 8px 0; font-size: 13px; }
.grand-total { padding-top: 14px; margin-top: 8px; border-top: 3px solid #111111; font-size: 18px; font-weight: 700; }
.words { border-top: 1px solid #e5e5e5; padding-top: 16px; margin-bottom: 32px; font-size: 13px; }
.words em { font-weight: 500; }
.invoice-footer { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; border-top: 1px solid #e5e5e5; padding-top: 24px; }
.terms ul { font-size: 12px; color: #888888; list-style: none; padding: 0; margin: 0; line-height: 2; }
.signature { text-align: right; }
.signature-line { display: inline-block; border-top: 1px solid #cccccc; padding-top: 8px; font-size: 12px; font-weight: 600; margin-top: 48px; }
.disclaimer { text-align: center; margin-top: 36px; padding-top: 16px; border-top: 1px solid #e5e5e5; font-size: 11px; color: #aaaaaa; }
`
